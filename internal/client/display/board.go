package display

import (
	"fmt"
	"io"
	"strings"
)

// RenderBoard writes the server's ASCII board with colored pieces. Black
// pieces are lowercase, white uppercase.
func RenderBoard(w io.Writer, asciiBoard string) {
	lines := strings.Split(asciiBoard, "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		isFileLine := i == 0 || i == len(lines)-1

		var sb strings.Builder
		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'h' && isFileLine:
				sb.WriteString(Paint(Label, string(char)))
			case char >= 'A' && char <= 'Z':
				sb.WriteString(Paint(WhiteSide, string(char)))
			case char >= 'a' && char <= 'z':
				sb.WriteString(Paint(BlackSide, string(char)))
			case char >= '1' && char <= '8':
				sb.WriteString(Paint(Label, string(char)))
			default:
				sb.WriteRune(char)
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

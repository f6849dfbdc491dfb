package board

import (
	"fmt"
	"strings"

	"chessdemo/internal/core"
)

// FEN writes the placement and side-to-move fields. Rows run from rank 0
// (black's home row) to rank 7, files left to right.
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := 0; r < core.BoardSize; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < core.BoardSize; f++ {
			p := b.grid[f][r]
			if p.IsZero() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteByte(byte(b.active))
	return sb.String()
}

// ParseFEN builds a board from FEN() output. Fields after the side to move
// are accepted and ignored. The returned board has status ready.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid FEN: expected placement and turn, got %d parts", len(parts))
	}

	b := &Board{status: core.StatusReady}

	rows := strings.Split(parts[0], "/")
	if len(rows) != core.BoardSize {
		return nil, fmt.Errorf("invalid FEN: expected 8 rows, got %d", len(rows))
	}

	for r, row := range rows {
		file := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= core.BoardSize {
				return nil, fmt.Errorf("invalid FEN: too many pieces in row %d", r+1)
			}
			p, ok := core.PieceFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("invalid FEN: unknown piece %q in row %d", ch, r+1)
			}
			b.grid[file][r] = p
			file++
		}
		if file != core.BoardSize {
			return nil, fmt.Errorf("invalid FEN: row %d has %d files", r+1, file)
		}
	}

	switch parts[1] {
	case "b":
		b.active = core.ColorBlack
	case "w":
		b.active = core.ColorWhite
	default:
		return nil, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}

	return b, nil
}

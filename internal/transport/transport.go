package transport

import (
	"chessdemo/internal/board"
	"chessdemo/internal/core"
	"chessdemo/internal/game"
)

// View abstracts display/output operations
type View interface {
	DisplayBoard(g board.Grid, highlights []core.Square)
	ShowMessage(msg string)
	ShowError(err error)
	ShowGameHistory(g *game.Game)
	ShowMove(rec game.MoveRecord)
	ShowGameOver(state core.State)
	ShowPrompt(prompt string)
}

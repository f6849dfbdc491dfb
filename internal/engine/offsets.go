package engine

import "chessdemo/internal/core"

const maxSlide = core.BoardSize - 1

var (
	pawnOffsets = []core.Offset{{DFile: 0, DRank: 1}, {DFile: 0, DRank: 2}, {DFile: 1, DRank: 1}, {DFile: -1, DRank: 1}}

	knightOffsets = []core.Offset{
		{DFile: 1, DRank: 2}, {DFile: 1, DRank: -2}, {DFile: -1, DRank: 2}, {DFile: -1, DRank: -2},
		{DFile: 2, DRank: 1}, {DFile: 2, DRank: -1}, {DFile: -2, DRank: 1}, {DFile: -2, DRank: -1},
	}

	kingOffsets = []core.Offset{
		{DFile: 1, DRank: 0}, {DFile: -1, DRank: 0}, {DFile: 0, DRank: 1}, {DFile: 0, DRank: -1},
		{DFile: 1, DRank: 1}, {DFile: -1, DRank: -1}, {DFile: 1, DRank: -1}, {DFile: -1, DRank: 1},
	}

	rookOffsets   = slide(kingOffsets[:4])
	bishopOffsets = slide(kingOffsets[4:])
	queenOffsets  = slide(kingOffsets)
)

// slide repeats each unit direction at distances 1..7, distance-major
func slide(dirs []core.Offset) []core.Offset {
	out := make([]core.Offset, 0, len(dirs)*maxSlide)
	for i := 1; i <= maxSlide; i++ {
		for _, d := range dirs {
			out = append(out, core.Offset{DFile: d.DFile * i, DRank: d.DRank * i})
		}
	}
	return out
}

// CandidateOffsets returns the reach of a piece type before mirroring and
// edge filtering, forward meaning increasing rank. The slice is a copy.
func CandidateOffsets(t core.PieceType) []core.Offset {
	var table []core.Offset
	switch t {
	case core.Pawn:
		table = pawnOffsets
	case core.Rook:
		table = rookOffsets
	case core.Knight:
		table = knightOffsets
	case core.Bishop:
		table = bishopOffsets
	case core.Queen:
		table = queenOffsets
	case core.King:
		table = kingOffsets
	}
	return append([]core.Offset(nil), table...)
}

// Mirror returns a new slice with every offset negated when white is to
// move. The input is never modified.
func Mirror(offsets []core.Offset, active core.Color) []core.Offset {
	out := make([]core.Offset, len(offsets))
	for i, o := range offsets {
		if active == core.ColorWhite {
			o = o.Negate()
		}
		out[i] = o
	}
	return out
}

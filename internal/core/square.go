package core

import "fmt"

const BoardSize = 8

// Square is a (file, rank) coordinate. Valid squares have both in [0,7].
type Square struct {
	File int
	Rank int
}

func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Add translates the square by an offset without bounds checking
func (s Square) Add(o Offset) Square {
	return Square{File: s.File + o.DFile, Rank: s.Rank + o.DRank}
}

// String renders "a1".."h8"; file letter first, then rank+1
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q: expected 2 characters", s)
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return Square{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}, nil
}

// Offset is a relative (Δfile, Δrank) step
type Offset struct {
	DFile int
	DRank int
}

func (o Offset) Negate() Offset {
	return Offset{DFile: -o.DFile, DRank: -o.DRank}
}

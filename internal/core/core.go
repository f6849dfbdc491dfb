package core

import (
	"fmt"

	"github.com/google/uuid"
)

type Color byte

const (
	ColorNone  Color = 0
	ColorBlack Color = 'b'
	ColorWhite Color = 'w'
)

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	default:
		return "-"
	}
}

// ParseColor accepts "black"/"white" and the single letter forms "b"/"w"
func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "b":
		return ColorBlack, nil
	case "white", "w":
		return ColorWhite, nil
	default:
		return ColorNone, fmt.Errorf("invalid color: %q", s)
	}
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Letter returns the upper-case piece letter used in FEN and board output
func (t PieceType) Letter() byte {
	switch t {
	case Pawn:
		return 'P'
	case Rook:
		return 'R'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return 0
	}
}

// Piece is an immutable value. The zero Piece is an empty square.
type Piece struct {
	Color Color
	Type  PieceType
}

func NewPiece(color Color, t PieceType) Piece {
	return Piece{Color: color, Type: t}
}

func (p Piece) IsZero() bool {
	return p.Type == NoPiece
}

// Letter returns upper case for white and lower case for black, 0 for empty
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if l == 0 {
		return 0
	}
	if p.Color == ColorBlack {
		return l + ('a' - 'A')
	}
	return l
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}

// PieceFromLetter is the inverse of Piece.Letter
func PieceFromLetter(ch byte) (Piece, bool) {
	color := ColorWhite
	if ch >= 'a' && ch <= 'z' {
		color = ColorBlack
		ch -= 'a' - 'A'
	}
	var t PieceType
	switch ch {
	case 'P':
		t = Pawn
	case 'R':
		t = Rook
	case 'N':
		t = Knight
	case 'B':
		t = Bishop
	case 'Q':
		t = Queen
	case 'K':
		t = King
	default:
		return Piece{}, false
	}
	return Piece{Color: color, Type: t}, true
}

// Status is the board's informational lifecycle flag
type Status int

const (
	StatusReady Status = iota
	StatusInProgress
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	default:
		return "ready"
	}
}

type PlayerType int

const (
	PlayerHuman PlayerType = iota + 1
	PlayerRemote
)

// Player occupies one seat of a game
type Player struct {
	ID    string     `json:"id"`
	Color Color      `json:"-"`
	Type  PlayerType `json:"type"`
}

func NewPlayer(t PlayerType, color Color) *Player {
	return &Player{
		ID:    uuid.New().String(),
		Color: color,
		Type:  t,
	}
}

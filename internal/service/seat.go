package service

import (
	"fmt"
	"time"

	"chessdemo/internal/core"

	"github.com/lixenwraith/auth"
)

// SeatTTL bounds how long a seat token stays valid
const SeatTTL = 24 * time.Hour

// Seat is the verified holder of one side of a game
type Seat struct {
	PlayerID string
	GameID   string
	Color    core.Color
}

// IssueSeatTokens signs one token per side of a game
func (s *Service) IssueSeatTokens(gameID string) (core.SeatTokens, error) {
	g, err := s.GetGame(gameID)
	if err != nil {
		return core.SeatTokens{}, err
	}

	var tokens core.SeatTokens
	for _, c := range []core.Color{core.ColorBlack, core.ColorWhite} {
		claims := map[string]any{
			"gameId": gameID,
			"color":  string(c),
		}
		token, err := auth.GenerateHS256Token(s.seatKey, g.Player(c).ID, claims, SeatTTL)
		if err != nil {
			return core.SeatTokens{}, fmt.Errorf("failed to sign %s seat: %w", c, err)
		}
		if c == core.ColorBlack {
			tokens.Black = token
		} else {
			tokens.White = token
		}
	}
	return tokens, nil
}

// ValidateSeat verifies a seat token for gameID
func (s *Service) ValidateSeat(gameID, token string) (Seat, error) {
	playerID, claims, err := auth.ValidateHS256Token(s.seatKey, token)
	if err != nil {
		return Seat{}, fmt.Errorf("invalid seat token: %w", err)
	}

	tokenGame, _ := claims["gameId"].(string)
	if tokenGame != gameID {
		return Seat{}, fmt.Errorf("seat token belongs to another game")
	}

	colorClaim, _ := claims["color"].(string)
	color, err := core.ParseColor(colorClaim)
	if err != nil {
		return Seat{}, fmt.Errorf("seat token has no valid color")
	}

	g, err := s.GetGame(gameID)
	if err != nil {
		return Seat{}, err
	}
	if g.Player(color).ID != playerID {
		return Seat{}, fmt.Errorf("seat token subject does not hold the %s seat", color)
	}

	return Seat{PlayerID: playerID, GameID: gameID, Color: color}, nil
}

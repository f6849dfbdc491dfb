package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chessdemo/internal/core"
	"chessdemo/internal/engine"
	"chessdemo/internal/game"
	"chessdemo/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("not your turn")
)

// Service owns every running game. The engine under a game is single
// threaded; all calls into it happen with mu held.
type Service struct {
	games     map[string]*game.Game
	mu        sync.RWMutex
	store     *storage.Store // nil if persistence disabled
	seatKey   []byte
	waiter    *WaitRegistry
	observers []engine.Observer
}

// New creates a service with optional storage. seatKey signs seat tokens.
func New(store *storage.Store, seatKey []byte) *Service {
	return &Service{
		games:   make(map[string]*game.Game),
		store:   store,
		seatKey: seatKey,
		waiter:  NewWaitRegistry(),
	}
}

// CreateGame starts a game on the standard layout with both seats of type pt
func (s *Service) CreateGame(id string, start game.Start, pt core.PlayerType) (*game.Game, error) {
	black := core.NewPlayer(pt, core.ColorBlack)
	white := core.NewPlayer(pt, core.ColorWhite)
	return s.register(game.New(id, black, white, start))
}

// ResumeGame starts a game from a FEN position
func (s *Service) ResumeGame(id, fen string, blackType, whiteType core.PlayerType) (*game.Game, error) {
	black := core.NewPlayer(blackType, core.ColorBlack)
	white := core.NewPlayer(whiteType, core.ColorWhite)
	g, err := game.Resume(id, fen, black, white)
	if err != nil {
		return nil, err
	}
	return s.register(g)
}

func (s *Service) register(g *game.Game) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := g.ID()
	if _, exists := s.games[id]; exists {
		return nil, fmt.Errorf("game %s already exists", id)
	}

	for _, fn := range s.observers {
		g.AddObserver(fn)
	}
	s.games[id] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:        id,
			InitialFEN:    g.InitialFEN(),
			StartingColor: string(g.NextTurn()),
			BlackPlayerID: g.Player(core.ColorBlack).ID,
			WhitePlayerID: g.Player(core.ColorWhite).ID,
			StartTimeUTC:  time.Now().UTC(),
		})
	}

	return g, nil
}

// AddObserver registers fn on every game created afterwards
func (s *Service) AddObserver(fn engine.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// GetGame retrieves a game by ID. Callers outside the service must only
// read from it through View.
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

// View runs fn with a read lock held on the game
func (s *Service) View(gameID string, fn func(g *game.Game) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return fn(g)
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

func (s *Service) PieceAt(gameID string, sq core.Square) (core.Piece, error) {
	var p core.Piece
	err := s.View(gameID, func(g *game.Game) error {
		p = g.PieceAt(sq)
		return nil
	})
	return p, err
}

func (s *Service) PossibleMoves(gameID string, sq core.Square) ([]core.Square, error) {
	var moves []core.Square
	err := s.View(gameID, func(g *game.Game) error {
		var err error
		moves, err = g.PossibleMoves(sq)
		return err
	})
	return moves, err
}

// Select returns highlights for a piece of the side to move
func (s *Service) Select(gameID string, sq core.Square) ([]core.Square, error) {
	var moves []core.Square
	err := s.View(gameID, func(g *game.Game) error {
		var err error
		moves, err = g.Select(sq)
		return err
	})
	return moves, err
}

// MakeMove applies a move for whichever side is to move and persists it
func (s *Service) MakeMove(gameID string, from, to core.Square) (game.MoveRecord, error) {
	return s.makeMove(gameID, core.ColorNone, from, to)
}

// MakeMoveAs applies a move on behalf of the mover seat. The turn check and
// the move happen under one lock; a seat off turn gets ErrNotYourTurn.
func (s *Service) MakeMoveAs(gameID string, mover core.Color, from, to core.Square) (game.MoveRecord, error) {
	return s.makeMove(gameID, mover, from, to)
}

func (s *Service) makeMove(gameID string, mover core.Color, from, to core.Square) (game.MoveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return game.MoveRecord{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	if mover != core.ColorNone && mover != g.NextTurn() {
		return game.MoveRecord{}, fmt.Errorf("%w: %s to move, seat is %s", ErrNotYourTurn, g.NextTurn(), mover)
	}

	rec, err := g.Move(from, to)
	if err != nil {
		return game.MoveRecord{}, err
	}

	s.waiter.NotifyGame(gameID, g.MoveCount())

	if s.store != nil {
		captured := ""
		if l := rec.Captured.Letter(); l != 0 {
			captured = string(l)
		}
		s.store.RecordMove(storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   rec.Number,
			FromSquare:   rec.From.String(),
			ToSquare:     rec.To.String(),
			Piece:        string(rec.Piece.Letter()),
			Captured:     captured,
			FENAfterMove: rec.FEN,
			PlayerColor:  string(rec.Color),
			MoveTimeUTC:  time.Now().UTC(),
		})
		if w := g.Winner(); w != core.ColorNone {
			s.store.RecordWinner(gameID, string(w))
		}
	}

	return rec, nil
}

// DeleteGame removes a game from memory and storage
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	s.waiter.RemoveGame(gameID)
	delete(s.games, gameID)

	if s.store != nil {
		s.store.DeleteGame(gameID)
	}
	return nil
}

// RegisterWait returns a channel signalled when the game's move count moves
// away from moveCount, the game is deleted, or the wait times out
func (s *Service) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	return s.waiter.RegisterWait(ctx, gameID, moveCount)
}

// ActiveGames reports how many games are registered
func (s *Service) ActiveGames() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Shutdown releases waiters and closes storage
func (s *Service) Shutdown(timeout time.Duration) error {
	s.mu.Lock()
	s.games = make(map[string]*game.Game)
	s.mu.Unlock()

	err := s.waiter.Shutdown(timeout)

	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

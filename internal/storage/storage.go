package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	writeQueueSize = 1000
	drainTimeout   = 2 * time.Second
)

// Store persists games and moves to SQLite. Writes are queued and applied
// by a single goroutine; a failing write marks the store degraded and
// later writes are dropped.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan func(*sql.Tx) error
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

// NewStore opens the database and starts the async writer
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// One connection keeps the foreign_keys pragma on every statement
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan func(*sql.Tx) error, writeQueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			s.drain()
			return

		case fn := <-s.writeChan:
			if !s.healthStatus.Load() {
				continue
			}
			s.executeWrite(fn)
		}
	}
}

// drain applies queued writes until the queue is empty or the deadline passes
func (s *Store) drain() {
	deadline := time.After(drainTimeout)
	for {
		select {
		case fn := <-s.writeChan:
			if s.healthStatus.Load() {
				s.executeWrite(fn)
			}
		case <-deadline:
			return
		default:
			return
		}
	}
}

func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
	}
}

// enqueue hands fn to the writer, dropping it when degraded or full
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() {
		return
	}

	select {
	case s.writeChan <- fn:
	default:
		log.Printf("Storage write queue full, dropping %s", what)
	}
}

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO games (
			game_id, initial_fen, starting_color,
			black_player_id, white_player_id, start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`,
			record.GameID, record.InitialFEN, record.StartingColor,
			record.BlackPlayerID, record.WhitePlayerID, record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO moves (
			game_id, move_number, from_square, to_square, piece, captured,
			fen_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.GameID, record.MoveNumber, record.FromSquare, record.ToSquare,
			record.Piece, record.Captured, record.FENAfterMove,
			record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordWinner asynchronously marks a finished game
func (s *Store) RecordWinner(gameID, winner string) {
	s.enqueue("winner update", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET winner = ? WHERE game_id = ?`, winner, gameID)
		return err
	})
}

// DeleteGame asynchronously removes a game and, by cascade, its moves
func (s *Store) DeleteGame(gameID string) {
	s.enqueue("game delete", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM games WHERE game_id = ?`, gameID)
		return err
	})
}

func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// Close flushes queued writes and closes the database
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(drainTimeout + time.Second):
			log.Printf("Warning: storage writer shutdown timeout, some writes may be lost")
		}

		err = s.db.Close()
	})
	return err
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}

// QueryGames lists games, newest first. Empty or "*" filters match all.
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT
		game_id, initial_fen, starting_color,
		black_player_id, white_player_id, winner, start_time_utc
	FROM games WHERE 1=1`

	var args []any

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if playerID != "" && playerID != "*" {
		query += " AND (black_player_id = ? OR white_player_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(
			&g.GameID, &g.InitialFEN, &g.StartingColor,
			&g.BlackPlayerID, &g.WhitePlayerID, &g.Winner, &g.StartTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the moves of a game in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, from_square, to_square, piece, captured,
		fen_after_move, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.FromSquare, &m.ToSquare,
			&m.Piece, &m.Captured, &m.FENAfterMove, &m.PlayerColor, &m.MoveTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}

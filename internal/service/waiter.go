package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WaitTimeout bounds a single long-poll
const WaitTimeout = 25 * time.Second

// WaitRegistry tracks long-polling clients per game
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string]map[*waiter]struct{}
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	timeout  time.Duration
}

type waiter struct {
	moveCount int
	notify    chan struct{} // buffered, receives exactly once when fired
	done      chan struct{} // closed when fired
	fired     bool
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string]map[*waiter]struct{}),
		shutdown: make(chan struct{}),
		timeout:  WaitTimeout,
	}
}

// RegisterWait returns a channel that receives once: on a move count change,
// game removal, timeout or shutdown. Cancelling ctx unregisters silently.
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	wt := &waiter{
		moveCount: moveCount,
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	w.mu.Lock()
	set, ok := w.waiters[gameID]
	if !ok {
		set = make(map[*waiter]struct{})
		w.waiters[gameID] = set
	}
	set[wt] = struct{}{}
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		timer := time.NewTimer(w.timeout)
		defer timer.Stop()

		select {
		case <-wt.done:
			return
		case <-ctx.Done():
			w.mu.Lock()
			w.remove(gameID, wt)
			w.mu.Unlock()
		case <-timer.C:
			w.lockAndFire(gameID, wt)
		case <-w.shutdown:
			w.lockAndFire(gameID, wt)
		}
	}()

	return wt.notify
}

// NotifyGame wakes waiters whose last known move count differs
func (w *WaitRegistry) NotifyGame(gameID string, moveCount int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for wt := range w.waiters[gameID] {
		if wt.moveCount != moveCount {
			w.fire(gameID, wt)
		}
	}
}

// RemoveGame wakes every waiter of a deleted game
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for wt := range w.waiters[gameID] {
		w.fire(gameID, wt)
	}
}

// Waiting reports how many clients are parked on a game
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown wakes all waiters and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.once.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out")
	}
}

func (w *WaitRegistry) lockAndFire(gameID string, wt *waiter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fire(gameID, wt)
}

// fire must be called with mu held
func (w *WaitRegistry) fire(gameID string, wt *waiter) {
	if wt.fired {
		return
	}
	wt.fired = true
	wt.notify <- struct{}{}
	close(wt.done)
	w.remove(gameID, wt)
}

// remove must be called with mu held
func (w *WaitRegistry) remove(gameID string, wt *waiter) {
	set := w.waiters[gameID]
	delete(set, wt)
	if len(set) == 0 {
		delete(w.waiters, gameID)
	}
}

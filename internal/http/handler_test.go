package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chessdemo/internal/core"
	"chessdemo/internal/processor"
	"chessdemo/internal/service"

	"github.com/gofiber/fiber/v2"
)

var testKey = []byte("test-secret-minimum-32-characters-long")

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := service.New(nil, testKey)
	t.Cleanup(func() { svc.Shutdown(time.Second) })
	return NewFiberApp(processor.New(svc), svc, true)
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func create(t *testing.T, app *fiber.App) core.CreateGameResponse {
	t.Helper()
	resp, data := do(t, app, fiber.MethodPost, "/api/v1/games", `{"start":"black"}`, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: status %d: %s", resp.StatusCode, data)
	}
	var created core.CreateGameResponse
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	return created
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var e core.ErrorResponse
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("decode error body %q: %v", data, err)
	}
	return e.Code
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	resp, data := do(t, app, fiber.MethodGet, "/health", "", "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(data), `"storage":"disabled"`) {
		t.Fatalf("health: %d %s", resp.StatusCode, data)
	}

	create(t, app)
	_, data = do(t, app, fiber.MethodGet, "/health", "", "")
	if !strings.Contains(string(data), `"games":1`) {
		t.Fatalf("health after create: %s", data)
	}
}

func TestCreateGame(t *testing.T) {
	app := newApp(t)

	created := create(t, app)
	if created.Turn != "black" || created.Seats.Black == "" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	// Empty body takes the default start
	resp, _ := do(t, app, fiber.MethodPost, "/api/v1/games", "", "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("empty body: status %d", resp.StatusCode)
	}

	resp, data := do(t, app, fiber.MethodPost, "/api/v1/games", `{"start":"purple"}`, "")
	if resp.StatusCode != fiber.StatusBadRequest || errorCode(t, data) != core.ErrInvalidRequest {
		t.Fatalf("bad start: %d %s", resp.StatusCode, data)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/games", strings.NewReader("start=white"))
	req.Header.Set("Content-Type", "text/plain")
	r, err := app.Test(req)
	if err != nil {
		t.Fatalf("text body: %v", err)
	}
	if r.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Fatalf("text body: status %d", r.StatusCode)
	}
}

func TestMakeMove(t *testing.T) {
	app := newApp(t)
	created := create(t, app)
	path := "/api/v1/games/" + created.GameID + "/moves"

	tests := []struct {
		name   string
		body   string
		token  string
		status int
		code   string
	}{
		{"no token", `{"from":"e2","to":"e4"}`, "", fiber.StatusUnauthorized, core.ErrUnauthorized},
		{"wrong seat", `{"from":"e2","to":"e4"}`, created.Seats.White, fiber.StatusForbidden, core.ErrNotYourTurn},
		{"bad square", `{"from":"e2","to":"e9"}`, created.Seats.Black, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"missing field", `{"from":"e2"}`, created.Seats.Black, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"empty origin", `{"from":"e4","to":"e5"}`, created.Seats.Black, fiber.StatusBadRequest, core.ErrNoPieceAtOrigin},
		{"opponent piece", `{"from":"e7","to":"e6"}`, created.Seats.Black, fiber.StatusBadRequest, core.ErrWrongTurn},
		{"unreachable", `{"from":"e2","to":"e6"}`, created.Seats.Black, fiber.StatusBadRequest, core.ErrIllegalDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, app, fiber.MethodPost, path, tt.body, tt.token)
			if resp.StatusCode != tt.status {
				t.Fatalf("status %d, want %d: %s", resp.StatusCode, tt.status, data)
			}
			if code := errorCode(t, data); code != tt.code {
				t.Fatalf("code %s, want %s", code, tt.code)
			}
		})
	}

	resp, data := do(t, app, fiber.MethodPost, path, `{"from":"e2","to":"e4"}`, created.Seats.Black)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("legal move: %d %s", resp.StatusCode, data)
	}
	var game core.GameResponse
	if err := json.Unmarshal(data, &game); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if game.Turn != "white" || len(game.Moves) != 1 {
		t.Fatalf("unexpected game: %+v", game)
	}
}

func TestQueries(t *testing.T) {
	app := newApp(t)
	id := create(t, app).GameID
	base := "/api/v1/games/" + id

	resp, data := do(t, app, fiber.MethodGet, base+"/squares/e1", "", "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(data), `"type":"king"`) {
		t.Fatalf("square: %d %s", resp.StatusCode, data)
	}

	resp, data = do(t, app, fiber.MethodGet, base+"/squares/g1/moves", "", "")
	var moves core.MovesResponse
	if err := json.Unmarshal(data, &moves); err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("moves: %d %s", resp.StatusCode, data)
	}
	if len(moves.Destinations) != 3 {
		t.Fatalf("knight at g1: %v", moves.Destinations)
	}

	resp, data = do(t, app, fiber.MethodGet, base+"/squares/j9", "", "")
	if resp.StatusCode != fiber.StatusBadRequest || errorCode(t, data) != core.ErrInvalidSquare {
		t.Fatalf("bad square: %d %s", resp.StatusCode, data)
	}

	resp, data = do(t, app, fiber.MethodGet, base+"/board", "", "")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(data), `"fen"`) {
		t.Fatalf("board: %d %s", resp.StatusCode, data)
	}

	resp, _ = do(t, app, fiber.MethodGet, "/api/v1/games/not-a-uuid", "", "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad id: status %d", resp.StatusCode)
	}
}

func TestDeleteGame(t *testing.T) {
	app := newApp(t)
	id := create(t, app).GameID

	resp, _ := do(t, app, fiber.MethodDelete, "/api/v1/games/"+id, "", "")
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	resp, data := do(t, app, fiber.MethodGet, "/api/v1/games/"+id, "", "")
	if resp.StatusCode != fiber.StatusNotFound || errorCode(t, data) != core.ErrGameNotFound {
		t.Fatalf("get deleted: %d %s", resp.StatusCode, data)
	}
}

func TestLongPoll(t *testing.T) {
	app := newApp(t)
	created := create(t, app)
	base := "/api/v1/games/" + created.GameID

	// Stale move count returns at once
	resp, _ := do(t, app, fiber.MethodGet, base+"?wait=true&moveCount=5", "", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("stale poll: status %d", resp.StatusCode)
	}

	type result struct {
		game core.GameResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		req := httptest.NewRequest(fiber.MethodGet, base+"?wait=true&moveCount=0", nil)
		r, err := app.Test(req, 5000)
		if err != nil {
			done <- result{err: err}
			return
		}
		var g core.GameResponse
		err = json.NewDecoder(r.Body).Decode(&g)
		done <- result{game: g, err: err}
	}()

	time.Sleep(100 * time.Millisecond)
	resp, data := do(t, app, fiber.MethodPost, base+"/moves", `{"from":"b1","to":"c3"}`, created.Seats.Black)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("move: %d %s", resp.StatusCode, data)
	}

	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("poll: %v", res.err)
		}
		if len(res.game.Moves) != 1 {
			t.Fatalf("poll returned %d moves", len(res.game.Moves))
		}
	case <-time.After(4 * time.Second):
		t.Fatal("long poll not released by move")
	}
}

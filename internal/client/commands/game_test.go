package commands

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chessdemo/internal/client/session"
	chesshttp "chessdemo/internal/http"
	"chessdemo/internal/processor"
	"chessdemo/internal/service"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func newClient(t *testing.T) (*Registry, *session.Session, *bytes.Buffer) {
	t.Helper()
	svc := service.New(nil, []byte("test-secret-minimum-32-characters-long"))
	t.Cleanup(func() { svc.Shutdown(time.Second) })

	app := chesshttp.NewFiberApp(processor.New(svc), svc, true)
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	s := session.New(srv.URL)
	return NewRegistry(s, &out), s, &out
}

func TestGameFlow(t *testing.T) {
	r, s, out := newClient(t)

	r.Execute("new")
	if s.CurrentGame == "" || s.Seats.Black == "" || s.Seats.White == "" {
		t.Fatalf("new game not captured in session:\n%s", out)
	}

	r.Execute("e2e4")
	if s.LastMoveCount != 1 || s.CurrentGameState.Turn != "white" {
		t.Fatalf("bare move not applied:\n%s", out)
	}

	out.Reset()
	r.Execute("moves b1")
	if !strings.Contains(out.String(), "b1: a3 c3 d2") {
		t.Fatalf("moves output:\n%s", out)
	}

	out.Reset()
	r.Execute("square e1")
	if !strings.Contains(out.String(), "e1: black king") {
		t.Fatalf("square output:\n%s", out)
	}

	r.Execute("move e7 e5")
	if s.LastMoveCount != 2 {
		t.Fatalf("white reply not applied:\n%s", out)
	}

	// Fixed white seat on black's turn
	r.Execute("seat white")
	out.Reset()
	r.Execute("m d7 d6")
	if !strings.Contains(out.String(), "NOT_YOUR_TURN") {
		t.Fatalf("wrong seat not rejected:\n%s", out)
	}

	out.Reset()
	r.Execute("show")
	if !strings.Contains(out.String(), "Moves: 2") {
		t.Fatalf("show output:\n%s", out)
	}

	r.Execute("delete")
	if s.CurrentGame != "" {
		t.Fatal("session kept deleted game")
	}
}

func TestRegistry(t *testing.T) {
	r, _, out := newClient(t)

	if !r.Execute("bogus command") {
		t.Fatal("unknown command should not exit")
	}
	if !strings.Contains(out.String(), "Unknown command") {
		t.Fatalf("unknown command output:\n%s", out)
	}

	out.Reset()
	r.Execute("move e2e4")
	if !strings.Contains(out.String(), "no current game") {
		t.Fatalf("move without game:\n%s", out)
	}

	out.Reset()
	r.Execute("health")
	if !strings.Contains(out.String(), "storage: disabled") {
		t.Fatalf("health output:\n%s", out)
	}

	if r.Execute("x") {
		t.Fatal("exit should stop the loop")
	}
}

package http

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chessdemo/internal/core"
	"chessdemo/internal/game"
	"chessdemo/internal/processor"
	"chessdemo/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: service.WaitTimeout + 5*time.Second, // long-poll must finish first
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Get("/games/:gameId/board", h.GetBoard)
	api.Get("/games/:gameId/squares/:square", h.GetPiece)
	api.Get("/games/:gameId/squares/:square/moves", h.GetMoves)
	api.Post("/games/:gameId/moves", AuthRequired(), h.MakeMove)

	return app
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrInvalidRequest
			response.Details = "no such route"
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps processor error codes to HTTP status
func statusFor(code string) int {
	switch code {
	case core.ErrGameNotFound:
		return fiber.StatusNotFound
	case core.ErrNotYourTurn:
		return fiber.StatusForbidden
	case core.ErrUnauthorized:
		return fiber.StatusUnauthorized
	case core.ErrGameOver:
		return fiber.StatusConflict
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

func (h *HTTPHandler) respond(c *fiber.Ctx, resp processor.ProcessorResponse, okStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Data == nil {
		return c.SendStatus(okStatus)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
		"games":   h.svc.ActiveGames(),
	})
}

// CreateGame starts a game on the standard layout and returns both seat tokens
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return validationBypass(c)
	}

	resp := h.proc.Execute(processor.NewCreateGameCommand(req))
	return h.respond(c, resp, fiber.StatusCreated)
}

// GetGame returns game state, optionally long-polling until the move count
// differs from the moveCount query parameter
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if c.Query("wait", "false") != "true" {
		return h.respond(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	}

	moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
	if err != nil {
		moveCount = -1
	}

	// Register before reading the count so a move in between still wakes us
	ctx, cancel := context.WithCancel(c.Context())
	defer cancel()
	notify := h.svc.RegisterWait(ctx, gameID, moveCount)

	current := -1
	if err := h.svc.View(gameID, func(g *game.Game) error {
		current = g.MoveCount()
		return nil
	}); err != nil {
		return h.respond(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	}

	if current == moveCount {
		select {
		case <-notify:
		case <-c.Context().Done():
			return nil
		}
	}

	return h.respond(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
}

func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}
	return h.respond(c, h.proc.Execute(processor.NewDeleteGameCommand(gameID)), fiber.StatusNoContent)
}

// GetBoard returns the FEN and ASCII rendering of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}
	return h.respond(c, h.proc.Execute(processor.NewGetBoardCommand(gameID)), fiber.StatusOK)
}

func (h *HTTPHandler) GetPiece(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}
	return h.respond(c, h.proc.Execute(processor.NewGetPieceCommand(gameID, c.Params("square"))), fiber.StatusOK)
}

// GetMoves lists candidate destinations for the piece on a square
func (h *HTTPHandler) GetMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}
	return h.respond(c, h.proc.Execute(processor.NewGetMovesCommand(gameID, c.Params("square"))), fiber.StatusOK)
}

// MakeMove applies a move for the seat named by the bearer token
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return validationBypass(c)
	}

	seat, _ := c.Locals("seatToken").(string)
	resp := h.proc.Execute(processor.NewMakeMoveCommand(gameID, seat, req))
	return h.respond(c, resp, fiber.StatusOK)
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}

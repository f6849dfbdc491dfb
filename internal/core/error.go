package core

// Error codes
const (
	ErrGameNotFound       = "GAME_NOT_FOUND"
	ErrNoPieceAtOrigin    = "NO_PIECE_AT_ORIGIN"
	ErrWrongTurn          = "WRONG_TURN"
	ErrIllegalDestination = "ILLEGAL_DESTINATION"
	ErrNotYourTurn        = "NOT_YOUR_TURN"
	ErrGameOver           = "GAME_OVER"
	ErrRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent     = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest     = "INVALID_REQUEST"
	ErrInvalidSquare      = "INVALID_SQUARE"
	ErrInternalError      = "INTERNAL_ERROR"
	ErrUnauthorized       = "UNAUTHORIZED"
)

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"chessdemo/internal/client/display"
	"chessdemo/internal/core"
)

// Client talks to the chess server API and echoes every exchange
type Client struct {
	BaseURL    string
	SeatToken  string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Outlasts a server long-poll
			Timeout: 30 * time.Second,
		},
		Out: os.Stdout,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

// SetToken sets the seat token sent with moves
func (c *Client) SetToken(token string) {
	c.SeatToken = token
}

// APIError is a non-2xx response decoded from the server
type APIError struct {
	Status   int
	Response core.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Response.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Response.Error, e.Response.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (c *Client) doRequest(method, path string, body, result any, withToken bool) error {
	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken && c.SeatToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.SeatToken)
	}

	fmt.Fprintf(c.Out, "\n%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	if bodyStr != "" {
		fmt.Fprintf(c.Out, "%s%s%s\n", display.Blue, bodyStr, display.Reset)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		fmt.Fprintf(c.Out, "%s[ERROR] %s%s\n", display.Red, err.Error(), display.Reset)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	statusColor := display.Green
	if resp.StatusCode >= 400 {
		statusColor = display.Red
	}
	fmt.Fprintf(c.Out, "%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)

	if c.Verbose && len(respBody) > 0 {
		var pretty any
		if err := json.Unmarshal(respBody, &pretty); err == nil {
			fmt.Fprintf(c.Out, "%sResponse Body:%s\n", display.Cyan, display.Reset)
			display.PrettyPrintJSON(c.Out, pretty)
		} else {
			fmt.Fprintf(c.Out, "%sResponse:%s\n%s\n", display.Cyan, display.Reset, string(respBody))
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.Response); err == nil && apiErr.Response.Details != "" {
			fmt.Fprintf(c.Out, "%sDetails: %s%s\n", display.Red, apiErr.Response.Details, display.Reset)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			fmt.Fprintf(c.Out, "%sResponse parse error: %s%s\n", display.Red, err.Error(), display.Reset)
			return err
		}
	}

	return nil
}

// API Methods

func (c *Client) Health() (map[string]any, error) {
	var resp map[string]any
	err := c.doRequest(http.MethodGet, "/health", nil, &resp, false)
	return resp, err
}

func (c *Client) CreateGame(start string) (*core.CreateGameResponse, error) {
	var resp core.CreateGameResponse
	err := c.doRequest(http.MethodPost, "/api/v1/games", &core.CreateGameRequest{Start: start}, &resp, false)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodGet, "/api/v1/games/"+url.PathEscape(gameID), nil, &resp, false)
	return &resp, err
}

// GetGameWithPoll blocks until the game's move count differs from moveCount
// or the server's wait times out
func (c *Client) GetGameWithPoll(gameID string, moveCount int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("/api/v1/games/%s?wait=true&moveCount=%d", url.PathEscape(gameID), moveCount)
	err := c.doRequest(http.MethodGet, path, nil, &resp, false)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest(http.MethodDelete, "/api/v1/games/"+url.PathEscape(gameID), nil, nil, false)
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest(http.MethodGet, "/api/v1/games/"+url.PathEscape(gameID)+"/board", nil, &resp, false)
	return &resp, err
}

func (c *Client) GetPiece(gameID, square string) (*core.PieceResponse, error) {
	var resp core.PieceResponse
	path := fmt.Sprintf("/api/v1/games/%s/squares/%s", url.PathEscape(gameID), url.PathEscape(square))
	err := c.doRequest(http.MethodGet, path, nil, &resp, false)
	return &resp, err
}

func (c *Client) GetMoves(gameID, square string) (*core.MovesResponse, error) {
	var resp core.MovesResponse
	path := fmt.Sprintf("/api/v1/games/%s/squares/%s/moves", url.PathEscape(gameID), url.PathEscape(square))
	err := c.doRequest(http.MethodGet, path, nil, &resp, false)
	return &resp, err
}

// MakeMove submits a move with the current seat token
func (c *Client) MakeMove(gameID, from, to string) (*core.GameResponse, error) {
	var resp core.GameResponse
	req := &core.MoveRequest{From: from, To: to}
	err := c.doRequest(http.MethodPost, "/api/v1/games/"+url.PathEscape(gameID)+"/moves", req, &resp, true)
	return &resp, err
}

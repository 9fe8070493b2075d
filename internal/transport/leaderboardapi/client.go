package leaderboardapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

// Client calls the shared leaderboard backend. Both operations are RPC-style
// POSTs mirroring the submitScore/getLeaderboard callable contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type submitRequest struct {
	PlayerName       string `json:"playerName"`
	Score            int    `json:"score"`
	TimeTakenSeconds int64  `json:"timeTakenSeconds"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type leaderboardRequest struct {
	Limit int `json:"limit,omitempty"`
}

type leaderboardResponse struct {
	Success     bool                      `json:"success"`
	Leaderboard []entity.RemoteScoreEntry `json:"leaderboard"`
}

type errorEnvelope struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// SubmitScore pushes one round result to the shared board and returns the
// backend's confirmation message.
func (that *Client) SubmitScore(ctx context.Context, playerName string, score int, timeTakenSeconds int64) (string, error) {
	request := submitRequest{
		PlayerName:       playerName,
		Score:            score,
		TimeTakenSeconds: timeTakenSeconds,
	}

	var response submitResponse
	if err := that.call(ctx, "/submitScore", request, &response); err != nil {
		return "", err
	}

	return response.Message, nil
}

// GetLeaderboard fetches the top entries, ordered by score descending with
// ties broken by time ascending. A zero limit lets the backend default apply.
func (that *Client) GetLeaderboard(ctx context.Context, limit int) ([]entity.RemoteScoreEntry, error) {
	request := leaderboardRequest{Limit: limit}

	var response leaderboardResponse
	if err := that.call(ctx, "/getLeaderboard", request, &response); err != nil {
		return nil, err
	}

	return response.Leaderboard, nil
}

func (that *Client) call(ctx context.Context, path string, request, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", apperror.ErrService, err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Message == "" {
		return fmt.Errorf("%w: leaderboard backend returned status %d", apperror.ErrService, resp.StatusCode)
	}

	if envelope.Error.Status == "invalid-argument" {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidArgument, envelope.Error.Message)
	}

	return fmt.Errorf("%w: %s", apperror.ErrService, envelope.Error.Message)
}

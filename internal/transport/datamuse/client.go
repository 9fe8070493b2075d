package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

// relatedAnchor seeds the candidate query: words that frequently follow "the"
// give a broad, noun-heavy batch to pick a secret from.
const relatedAnchor = "the"

// Client talks to a Datamuse-compatible word association service. It owns no
// retry policy; callers decide how to react to a failed batch.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	candidateCount int
	similarCount   int
}

func New(baseURL string, timeout time.Duration, candidateCount, similarCount int) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		candidateCount: candidateCount,
		similarCount:   similarCount,
	}
}

// CandidateWords fetches a batch of secret-word candidates.
func (that *Client) CandidateWords(ctx context.Context) ([]entity.CandidateWord, error) {
	query := url.Values{}
	query.Set("rel_bga", relatedAnchor)
	query.Set("max", strconv.Itoa(that.candidateCount))

	return that.fetchWords(ctx, query)
}

// SimilarWords fetches words close in meaning to the given word.
func (that *Client) SimilarWords(ctx context.Context, word string) ([]entity.CandidateWord, error) {
	query := url.Values{}
	query.Set("ml", word)
	query.Set("max", strconv.Itoa(that.similarCount))

	return that.fetchWords(ctx, query)
}

func (that *Client) fetchWords(ctx context.Context, query url.Values) ([]entity.CandidateWord, error) {
	endpoint := that.baseURL + "/words?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build word request: %w", err)
	}

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: word service returned status %d", apperror.ErrService, resp.StatusCode)
	}

	var words []entity.CandidateWord
	if err = json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("%w: failed to decode word response: %w", apperror.ErrService, err)
	}

	return words, nil
}

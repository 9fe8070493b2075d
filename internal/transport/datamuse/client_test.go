package datamuse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
)

func TestClient_CandidateWords(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends the association query and decodes the batch", func(t *testing.T) {
		// Given: a word service capturing the request
		var query map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = map[string]string{
				"path":    r.URL.Path,
				"rel_bga": r.URL.Query().Get("rel_bga"),
				"max":     r.URL.Query().Get("max"),
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"word":"ocean","score":120},{"word":"sky","score":90}]`))
		}))
		defer server.Close()

		client := New(server.URL, time.Second, 50, 20)

		// When: candidates are fetched
		words, err := client.CandidateWords(ctx)

		// Then: the query carries the anchor and limit, the batch decodes
		require.NoError(t, err)
		assert.Equal(t, "/words", query["path"])
		assert.Equal(t, "the", query["rel_bga"])
		assert.Equal(t, "50", query["max"])

		require.Len(t, words, 2)
		assert.Equal(t, "ocean", words[0].Word)
		assert.Equal(t, 120, words[0].Score)
	})

	t.Run("Non-200 response maps to a service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := New(server.URL, time.Second, 50, 20)

		_, err := client.CandidateWords(ctx)

		require.ErrorIs(t, err, apperror.ErrService)
	})

	t.Run("Unreachable host maps to a network error", func(t *testing.T) {
		client := New("http://127.0.0.1:1", 100*time.Millisecond, 50, 20)

		_, err := client.CandidateWords(ctx)

		require.ErrorIs(t, err, apperror.ErrNetwork)
	})

	t.Run("Malformed body maps to a service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		}))
		defer server.Close()

		client := New(server.URL, time.Second, 50, 20)

		_, err := client.CandidateWords(ctx)

		require.ErrorIs(t, err, apperror.ErrService)
	})
}

func TestClient_SimilarWords(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends the meaning query for the given word", func(t *testing.T) {
		var query map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = map[string]string{
				"ml":  r.URL.Query().Get("ml"),
				"max": r.URL.Query().Get("max"),
			}
			_, _ = w.Write([]byte(`[{"word":"sea","score":100}]`))
		}))
		defer server.Close()

		client := New(server.URL, time.Second, 50, 20)

		words, err := client.SimilarWords(ctx, "ocean")

		require.NoError(t, err)
		assert.Equal(t, "ocean", query["ml"])
		assert.Equal(t, "20", query["max"])
		require.Len(t, words, 1)
		assert.Equal(t, "sea", words[0].Word)
	})
}

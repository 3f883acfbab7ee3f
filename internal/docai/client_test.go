package docai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestHealth(t *testing.T) {
	t.Run("success marker", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/healthcare", r.URL.Path)
			w.Write([]byte(`{"message": "success"}`))
		}))
		defer srv.Close()

		assert.NoError(t, NewClient(srv.URL).Health(context.Background()))
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := NewClient(srv.URL).Health(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status: 500")
	})

	t.Run("marker mismatch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message": "starting up"}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL).Health(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected health response")
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		err := NewClient(srv.URL).Health(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reach API")
	})
}

func TestUpload(t *testing.T) {
	t.Run("sends the file as a multipart form", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/upload", r.URL.Path)

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()

			assert.Equal(t, "report.pdf", header.Filename)
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "document bytes", string(data))

			w.Write([]byte(`{"session_id": "abc123"}`))
		}))
		defer srv.Close()

		sessionID, err := NewClient(srv.URL).Upload(context.Background(), "report.pdf", strings.NewReader("document bytes"))
		require.NoError(t, err)
		assert.Equal(t, "abc123", sessionID)
	})

	t.Run("missing session identifier", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Upload(context.Background(), "report.pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrNoSessionID)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Upload(context.Background(), "report.pdf", strings.NewReader("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status: 400")
	})
}

func TestAsk(t *testing.T) {
	t.Run("returns the answer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/ask", r.URL.Path)

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"session_id": "abc123", "question": "What is the total?"}`, string(body))

			w.Write([]byte(`{"answer": "42"}`))
		}))
		defer srv.Close()

		answer, err := NewClient(srv.URL).Ask(context.Background(), "abc123", "What is the total?")
		require.NoError(t, err)
		assert.Equal(t, "42", answer)
	})

	t.Run("empty answer is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"answer": ""}`))
		}))
		defer srv.Close()

		answer, err := NewClient(srv.URL).Ask(context.Background(), "abc123", "q")
		require.NoError(t, err)
		assert.Empty(t, answer)
	})

	t.Run("invalid session maps to the sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Invalid or expired session"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Ask(context.Background(), "stale", "q")
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("other server errors carry status and message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "model overloaded"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Ask(context.Background(), "abc123", "q")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "model overloaded", apiErr.Message)
		assert.Equal(t, "model overloaded", apiErr.Error())
	})

	t.Run("undecodable error body still reports the status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("bad gateway"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Ask(context.Background(), "abc123", "q")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "API error: status 502", apiErr.Error())
	})
}

func TestAPIErrorSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNoSessionID, ErrSessionInvalid))
}

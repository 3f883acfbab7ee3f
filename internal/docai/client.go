// Package docai is the HTTP client for the DocumentAI API. The API exposes
// three endpoints: a health check, a multipart document upload that opens a
// session, and a question endpoint scoped to that session. All document
// parsing and retrieval happens server-side; this client only moves bytes.
package docai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client wraps DocumentAI API interactions
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new DocumentAI client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // document processing can be slow
		},
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health probes GET /healthcare. It returns nil only for an HTTP success
// status whose body carries the expected marker; every other outcome is an
// error.
func (c *Client) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/healthcare", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API check failed with status: %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode health response: %w", err)
	}

	if health.Message != healthMarker {
		return fmt.Errorf("unexpected health response: %q", health.Message)
	}

	slog.Debug("health check ok", "url", c.baseURL)
	return nil
}

// Upload sends one file to POST /upload as a multipart form and returns the
// session identifier the server opened for it. A response without a session
// identifier fails with ErrNoSessionID.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	url := fmt.Sprintf("%s/upload", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed with status: %d", resp.StatusCode)
	}

	var upload UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	if upload.SessionID == "" {
		return "", ErrNoSessionID
	}

	slog.Debug("uploaded file", "name", name, "session", upload.SessionID)
	return upload.SessionID, nil
}

// Ask submits a question against a session via POST /ask. An HTTP success
// returns the answer field, which may be empty when the documents hold no
// answer. A failure whose error text names an invalid or expired session maps
// to ErrSessionInvalid so callers can tear the session down.
func (c *Client) Ask(ctx context.Context, sessionID, question string) (string, error) {
	jsonData, err := json.Marshal(&AskRequest{
		SessionID: sessionID,
		Question:  question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/ask", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var answer AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", &APIError{StatusCode: resp.StatusCode}
		}
		return "", fmt.Errorf("failed to decode ask response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if strings.Contains(answer.Error, sessionInvalidPhrase) {
			return "", fmt.Errorf("%w: %s", ErrSessionInvalid, answer.Error)
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: answer.Error}
	}

	slog.Debug("ask answered", "session", sessionID, "empty", answer.Answer == "")
	return answer.Answer, nil
}

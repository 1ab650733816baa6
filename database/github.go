package database

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"gatekeeper/api/config"
)

// ErrNotFound means the document does not exist in the repository. A missing
// document is an expected cold-start state, not a transport failure.
var ErrNotFound = errors.New("document not found")

// ErrConflict means the write carried a stale SHA: someone else committed a
// newer revision between our read and our write.
var ErrConflict = errors.New("document modified concurrently")

// APIError is a non-2xx response from the GitHub API that is neither a
// missing document nor a SHA conflict.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: status=%d body=%s", e.StatusCode, e.Body)
}

// GitHubClient reads and writes whole JSON documents through the GitHub
// contents API. Every stored file is addressed by path and versioned by the
// blob SHA the API returns on read; a write must present that SHA to update
// an existing file.
type GitHubClient struct {
	// BaseURL is overridable for tests; defaults to the public API.
	BaseURL string

	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	owner      string
	repo       string
	branch     string
}

const userAgent = "empire-gatekeeper"

func NewGitHubClient(cfg *config.Config) *GitHubClient {
	return &GitHubClient{
		BaseURL: "https://api.github.com",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		// The contents API is not built for high write volume; stay polite.
		limiter: rate.NewLimiter(rate.Every(time.Second/5), 5),
		token:   cfg.GitHubToken,
		owner:   cfg.RepoOwner,
		repo:    cfg.RepoName,
		branch:  cfg.Branch,
	}
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type commitResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// ReadFile fetches a document and returns its raw bytes plus the blob SHA
// needed for a conditional write. Returns ErrNotFound when the path does not
// exist on the configured branch.
func (c *GitHubClient) ReadFile(ctx context.Context, path string) ([]byte, string, error) {
	reqURL := c.contentsURL(path) + "?ref=" + url.QueryEscape(c.branch)

	resp, err := c.do(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", c.apiError(resp)
	}

	var payload contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("failed to decode contents response for %s: %w", path, err)
	}

	// The API wraps base64 content at 60 columns; strip the newlines first.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 content for %s: %w", path, err)
	}

	return raw, payload.SHA, nil
}

// WriteFile commits data to path. When sha is non-empty the write is
// conditional: the API rejects it with a conflict if the stored revision has
// moved on. An empty sha is a first-ever creation. Returns the new blob SHA.
func (c *GitHubClient) WriteFile(ctx context.Context, path string, data []byte, sha, message string) (string, error) {
	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(data),
		"branch":  c.branch,
	}
	if sha != "" {
		body["sha"] = sha
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode commit body for %s: %w", path, err)
	}

	resp, err := c.do(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// 409 is the documented stale-SHA response.
	if resp.StatusCode == http.StatusConflict {
		io.Copy(io.Discard, resp.Body)
		return "", ErrConflict
	}
	// 422 covers the same race when the file already exists and no SHA was
	// sent, but also unrelated validation failures (bad branch, oversized
	// content); only the SHA complaints get the conflict retry.
	if resp.StatusCode == http.StatusUnprocessableEntity {
		err := c.apiError(resp)
		if isSHAMismatch(err) {
			return "", ErrConflict
		}
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", c.apiError(resp)
	}

	var payload commitResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode commit response for %s: %w", path, err)
	}

	return payload.Content.SHA, nil
}

func (c *GitHubClient) do(ctx context.Context, method, reqURL string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	return resp, nil
}

func (c *GitHubClient) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.BaseURL, c.owner, c.repo, path)
}

func (c *GitHubClient) apiError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
}

// isSHAMismatch reports whether a 422 body is one of the contents API's
// stale-or-missing SHA messages ("... does not match", `"sha" wasn't
// supplied`) rather than an unrelated validation failure.
func isSHAMismatch(err *APIError) bool {
	body := strings.ToLower(err.Body)
	return strings.Contains(body, "sha") || strings.Contains(body, "does not match")
}

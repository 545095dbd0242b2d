package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	kferrors "github.com/keyfold/keyfold/internal/errors"
)

const (
	defaultAPIBase = "https://api.github.com"
	userAgent      = "keyfold-cli"
)

// File is the content of a vault path at one revision.
type File struct {
	// Content is the decoded file content.
	Content []byte
	// SHA is the blob SHA required to overwrite or delete this content.
	SHA string
}

// Revision is one entry in a path's commit history.
type Revision struct {
	// ID is the commit SHA, usable as the ref for historical reads.
	ID string
	// Timestamp is the commit time.
	Timestamp time.Time
	// Message is the commit message recorded at write time.
	Message string
}

// Client talks to the GitHub contents, commits and repos APIs for one vault
// repository. Reads go through a retrying client; mutations use a
// single-attempt client, since retrying a possibly-applied write without an
// idempotency token risks duplicate commits.
type Client struct {
	apiBase string
	token   string
	owner   string
	repo    string

	reads     *retryablehttp.Client
	mutations *http.Client
}

// APIBase returns the content-store API base URL, honoring the
// KEYFOLD_API_URL override used by tests and self-hosted setups.
func APIBase() string {
	if base := os.Getenv("KEYFOLD_API_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	return defaultAPIBase
}

// New returns a client bound to owner/repo, authenticating with token.
func New(token, owner, repo string) *Client {
	reads := retryablehttp.NewClient()
	reads.HTTPClient = cleanhttp.DefaultClient()
	reads.RetryMax = 3
	reads.Logger = nil

	return &Client{
		apiBase:   APIBase(),
		token:     token,
		owner:     owner,
		repo:      repo,
		reads:     reads,
		mutations: cleanhttp.DefaultClient(),
	}
}

func (c *Client) setHeaders(h http.Header) {
	h.Set("Authorization", "Bearer "+c.token)
	h.Set("Accept", "application/vnd.github+json")
	h.Set("User-Agent", userAgent)
}

// get performs an idempotent GET with retries.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req.Header)

	resp, err := c.reads.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kferrors.ErrRemoteUnavailable, err)
	}
	return resp, nil
}

// mutate performs a non-idempotent request exactly once.
func (c *Client) mutate(ctx context.Context, method, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req.Header)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.mutations.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kferrors.ErrRemoteUnavailable, err)
	}
	return resp, nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// CurrentUser returns the login of the authenticated user. Used to resolve
// the owner when a repo identity is given as a bare name.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, c.apiBase+"/user")
	if err != nil {
		return "", err
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: fetching user returned status %d", kferrors.ErrRemoteUnavailable, resp.StatusCode)
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("%w: decoding user response: %v", kferrors.ErrRemoteUnavailable, err)
	}
	if user.Login == "" {
		return "", fmt.Errorf("%w: user response had no login", kferrors.ErrRemoteUnavailable)
	}
	return user.Login, nil
}

// EnsureRepo verifies the vault repository exists, creating it as a private
// repository if it does not. Returns true if the repository was created.
func (c *Client) EnsureRepo(ctx context.Context) (bool, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/repos/%s/%s", c.apiBase, c.owner, c.repo))
	if err != nil {
		return false, err
	}
	drainAndClose(resp)

	switch {
	case resp.StatusCode == http.StatusOK:
		return false, nil
	case resp.StatusCode != http.StatusNotFound:
		return false, fmt.Errorf("%w: checking repository returned status %d", kferrors.ErrRemoteUnavailable, resp.StatusCode)
	}

	create, err := c.mutate(ctx, http.MethodPost, c.apiBase+"/user/repos", map[string]any{
		"name":        c.repo,
		"private":     true,
		"description": "Encrypted secrets vault managed by keyfold",
	})
	if err != nil {
		return false, err
	}
	defer drainAndClose(create)

	if create.StatusCode != http.StatusCreated {
		return false, fmt.Errorf("%w: creating repository returned status %d", kferrors.ErrRemoteUnavailable, create.StatusCode)
	}
	return true, nil
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBase, c.owner, c.repo, path)
}

// GetFile fetches the content at path. A non-empty ref selects a historical
// revision (a commit SHA from ListRevisions); empty means the current
// revision. Returns ErrSecretNotFound if the path does not exist at that
// revision.
func (c *Client) GetFile(ctx context.Context, path, ref string) (*File, error) {
	u := c.contentsURL(path)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, kferrors.ErrSecretNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s returned status %d", kferrors.ErrRemoteUnavailable, path, resp.StatusCode)
	}

	var file struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decoding contents response: %v", kferrors.ErrRemoteUnavailable, err)
	}

	// GitHub returns base64 content with embedded newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding content of %s: %v", kferrors.ErrRemoteUnavailable, path, err)
	}

	return &File{Content: decoded, SHA: file.SHA}, nil
}

// PutFile writes content to path with the given commit message. When
// overwriting, prevSHA must carry the blob SHA of the current content so the
// remote can reject lost updates; it is empty for a new file. Returns the
// new blob SHA. This is the single commit point of every mutating vault
// operation: it is attempted exactly once.
func (c *Client) PutFile(ctx context.Context, path string, content []byte, prevSHA, message string) (string, error) {
	body := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if prevSHA != "" {
		body["sha"] = prevSHA
	}

	resp, err := c.mutate(ctx, http.MethodPut, c.contentsURL(path), body)
	if err != nil {
		return "", err
	}
	defer drainAndClose(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return "", kferrors.ErrRevisionConflict
	default:
		return "", fmt.Errorf("%w: writing %s returned status %d", kferrors.ErrRemoteUnavailable, path, resp.StatusCode)
	}

	var result struct {
		Content struct {
			SHA string `json:"sha"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decoding write response: %v", kferrors.ErrRemoteUnavailable, err)
	}
	return result.Content.SHA, nil
}

// DeleteFile removes the current content at path. sha must be the blob SHA
// of the content being removed. Prior revisions remain in the repository's
// history; the vault never scrubs them.
func (c *Client) DeleteFile(ctx context.Context, path, sha, message string) error {
	resp, err := c.mutate(ctx, http.MethodDelete, c.contentsURL(path), map[string]any{
		"message": message,
		"sha":     sha,
	})
	if err != nil {
		return err
	}
	defer drainAndClose(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return kferrors.ErrSecretNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return kferrors.ErrRevisionConflict
	default:
		return fmt.Errorf("%w: deleting %s returned status %d", kferrors.ErrRemoteUnavailable, path, resp.StatusCode)
	}
}

// ListRevisions returns one page of the commits touching path, newest first.
// Pages are 1-based. A short page means the history is exhausted.
func (c *Client) ListRevisions(ctx context.Context, path string, page, perPage int) ([]Revision, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/commits?path=%s&per_page=%d&page=%d",
		c.apiBase, c.owner, c.repo, url.QueryEscape(path), perPage, page)

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, kferrors.ErrSecretNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: listing revisions of %s returned status %d", kferrors.ErrRemoteUnavailable, path, resp.StatusCode)
	}

	var commits []struct {
		SHA    string `json:"sha"`
		Commit struct {
			Message   string `json:"message"`
			Committer struct {
				Date time.Time `json:"date"`
			} `json:"committer"`
		} `json:"commit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil {
		return nil, fmt.Errorf("%w: decoding commits response: %v", kferrors.ErrRemoteUnavailable, err)
	}

	revisions := make([]Revision, 0, len(commits))
	for _, commit := range commits {
		revisions = append(revisions, Revision{
			ID:        commit.SHA,
			Timestamp: commit.Commit.Committer.Date,
			Message:   commit.Commit.Message,
		})
	}
	return revisions, nil
}

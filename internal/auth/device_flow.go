package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	kferrors "github.com/keyfold/keyfold/internal/errors"
)

const (
	defaultAuthBase = "https://github.com"
	defaultClientID = "Iv1.8f2a41c09b7d53e6"
)

// DeviceCode is the result of starting a device-flow authorization.
type DeviceCode struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	Interval        int    `json:"interval"`
	ExpiresIn       int    `json:"expires_in"`
}

// Client performs the GitHub device-authorization handshake. The rest of the
// application consumes only the resulting opaque token string; token scopes
// are never interpreted here.
type Client struct {
	authBase string
	clientID string
	http     *http.Client
}

// New returns a device-flow client. The endpoint and client ID honor the
// KEYFOLD_AUTH_URL and KEYFOLD_GITHUB_CLIENT_ID overrides.
func New() *Client {
	base := defaultAuthBase
	if v := os.Getenv("KEYFOLD_AUTH_URL"); v != "" {
		base = strings.TrimRight(v, "/")
	}
	clientID := defaultClientID
	if v := os.Getenv("KEYFOLD_GITHUB_CLIENT_ID"); v != "" {
		clientID = v
	}
	return &Client{authBase: base, clientID: clientID, http: cleanhttp.DefaultClient()}
}

func (c *Client) postForm(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kferrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kferrors.ErrRemoteUnavailable, err)
	}
	return body, nil
}

// RequestDeviceCode starts the device flow and returns the code the user
// must enter at the verification URI.
func (c *Client) RequestDeviceCode(ctx context.Context) (*DeviceCode, error) {
	body, err := c.postForm(ctx, c.authBase+"/login/device/code", url.Values{
		"client_id": {c.clientID},
	})
	if err != nil {
		return nil, err
	}

	var code DeviceCode
	if err := json.Unmarshal(body, &code); err != nil || code.DeviceCode == "" {
		// The endpoint reports problems as {error, error_description}.
		var apiErr struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%w: %s: %s", kferrors.ErrRemoteUnavailable, apiErr.Error, apiErr.Description)
		}
		return nil, fmt.Errorf("%w: unexpected device code response", kferrors.ErrRemoteUnavailable)
	}
	return &code, nil
}

// PollForToken polls the token endpoint until the user authorizes, the code
// expires, or access is denied. It honors the server-requested interval and
// slow_down responses.
func (c *Client) PollForToken(ctx context.Context, code *DeviceCode) (string, error) {
	interval := time.Duration(code.Interval+1) * time.Second

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(interval):
		}

		body, err := c.postForm(ctx, c.authBase+"/login/oauth/access_token", url.Values{
			"client_id":   {c.clientID},
			"device_code": {code.DeviceCode},
			"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
		})
		if err != nil {
			return "", err
		}

		var result struct {
			AccessToken string `json:"access_token"`
			Error       string `json:"error"`
			Description string `json:"error_description"`
			Interval    int    `json:"interval"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return "", fmt.Errorf("%w: decoding token response: %v", kferrors.ErrRemoteUnavailable, err)
		}

		switch {
		case result.AccessToken != "":
			return result.AccessToken, nil
		case result.Error == "authorization_pending":
			// Keep polling at the current interval.
		case result.Error == "slow_down":
			interval = time.Duration(result.Interval+5) * time.Second
		case result.Error == "expired_token":
			return "", kferrors.ErrDeviceCodeExpired
		case result.Error == "access_denied":
			return "", kferrors.ErrAccessDenied
		default:
			return "", fmt.Errorf("%w: authorization failed: %s", kferrors.ErrRemoteUnavailable, result.Description)
		}
	}
}

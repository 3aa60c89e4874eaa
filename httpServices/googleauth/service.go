package googleauth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://oauth2.googleapis.com"

// TokenInfo is the subset of Google's tokeninfo response this service needs.
type TokenInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
}

// Client verifies Google ID tokens against the tokeninfo endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a verification client. baseURL overrides the Google
// endpoint, used by tests.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// VerifyIDToken resolves an ID token into the account it was issued for.
func (c *Client) VerifyIDToken(idToken string) (*TokenInfo, error) {
	endpoint := fmt.Sprintf("%s/tokeninfo?id_token=%s", c.BaseURL, url.QueryEscape(idToken))

	resp, err := c.HTTPClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to reach token verification endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read verification response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token rejected with status %d", resp.StatusCode)
	}

	var info TokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode verification response: %w", err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("token carries no email claim")
	}

	// When a client id is configured, tokens minted for other apps are refused
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" && info.Audience != clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}

	return &info, nil
}

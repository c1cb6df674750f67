package portal

import (
	"context"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/izlytools/izly-qr/internal/config"
	"github.com/izlytools/izly-qr/internal/secret"
	"github.com/rs/zerolog/log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

var (
	cookieNameAuth = ".ASPXAUTH"

	fieldVerificationToken = "__RequestVerificationToken"
	fieldUserName          = "UserName"
	fieldPassword          = "Password"
)

// Credentials represents the username/password pair used to log in to the portal.
// Credentials only live for the duration of a single run and are never persisted.
type Credentials struct {
	Username string
	Password secret.Redacted
}

// Client represents an HTTP client bound to the portal.
// It holds the session cookies of at most one login and is read-only after Login succeeded.
type Client struct {
	config *config.Config
	http   *http.Client
}

// NewClient creates a new unauthenticated portal client
func NewClient(cfg *config.Config) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		config: cfg,
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
			// The portal signals a successful login with a redirect; it has to
			// surface instead of being followed.
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Login authenticates against the portal using the given credentials.
// It fetches the logon page to obtain the embedded verification token, posts the login form
// and verifies that the portal answered with a redirect carrying a session cookie.
func (client *Client) Login(ctx context.Context, creds Credentials) error {
	if creds.Username == "" || creds.Password.IsEmpty() {
		return ErrEmptyCredentials
	}

	verificationToken, err := client.fetchVerificationToken(ctx)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set(fieldVerificationToken, verificationToken)
	form.Set(fieldUserName, creds.Username)
	form.Set(fieldPassword, creds.Password.Reveal())

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint(client.config.PortalLogonPath), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("User-Agent", client.config.UserAgent)

	response, err := client.http.Do(request)
	if err != nil {
		return &AuthError{Wrapping: fmt.Errorf("could not reach the portal: %w", err)}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusFound {
		return ErrInvalidCredentials
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == cookieNameAuth && cookie.Value != "" {
			log.Debug().Str("username", creds.Username).Msg("portal session established")
			return nil
		}
	}
	return ErrNoSessionCookie
}

// fetchVerificationToken fetches the logon page and extracts the verification token the portal
// expects to be posted back together with the credentials
func (client *Client) fetchVerificationToken(ctx context.Context) (string, error) {
	document, err := client.fetchDocument(ctx, client.config.PortalLogonPath)
	if err != nil {
		return "", err
	}
	token, ok := document.Find(client.config.VerificationTokenSelector).First().Attr("value")
	if !ok || token == "" {
		return "", ErrNoVerificationToken
	}
	return token, nil
}

// fetchDocument performs a GET request against the given portal path and parses the response body
func (client *Client) fetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", client.config.UserAgent)

	response, err := client.http.Do(request)
	if err != nil {
		return nil, &AuthError{Wrapping: fmt.Errorf("could not reach the portal: %w", err)}
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusFound:
		return nil, ErrNotAuthenticated
	case response.StatusCode != http.StatusOK:
		return nil, &ParseError{Wrapping: fmt.Errorf("unexpected status code %d for '%s'", response.StatusCode, path)}
	}

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, &ParseError{Wrapping: err}
	}
	return document, nil
}

func (client *Client) endpoint(path string) string {
	return strings.TrimSuffix(client.config.PortalBaseURL, "/") + path
}

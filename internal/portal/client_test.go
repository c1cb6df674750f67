package portal

import (
	"context"
	"errors"
	"github.com/izlytools/izly-qr/internal/config"
	"github.com/izlytools/izly-qr/internal/portalsim"
	"github.com/izlytools/izly-qr/internal/secret"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Environment:               "dev",
		PortalBaseURL:             baseURL,
		PortalLogonPath:           "/Home/Logon",
		PortalProfilePath:         "/Home/Index",
		VerificationTokenSelector: "input[name='__RequestVerificationToken']",
		CardTokenSelector:         "[data-card-token]",
		CardTokenAttribute:        "data-card-token",
		CardTokenPattern:          "^[0-9A-Za-z]+$",
		RequestTimeout:            5 * time.Second,
		UserAgent:                 "izlyqr-test",
	}
}

func startSimulator(t *testing.T, accounts ...portalsim.Account) *httptest.Server {
	t.Helper()
	service, err := portalsim.New(accounts)
	if err != nil {
		t.Fatalf("could not create the portal simulator: %v", err)
	}
	server := httptest.NewServer(service.Router())
	t.Cleanup(server.Close)
	return server
}

func TestClientLogin(t *testing.T) {
	server := startSimulator(t, portalsim.Account{Username: "demo", Password: "hunter2", CardToken: "0123456789ABCDEF"})

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	creds := Credentials{Username: "demo", Password: secret.Redacted("hunter2")}
	if err := client.Login(context.Background(), creds); err != nil {
		t.Fatalf("expected the login to succeed, got %v", err)
	}
}

func TestClientLoginInvalidCredentials(t *testing.T) {
	server := startSimulator(t, portalsim.Account{Username: "demo", Password: "hunter2"})

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	creds := Credentials{Username: "demo", Password: secret.Redacted("wrong")}
	err = client.Login(context.Background(), creds)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClientLoginEmptyCredentials(t *testing.T) {
	client, err := NewClient(testConfig("http://127.0.0.1:0"))
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	err = client.Login(context.Background(), Credentials{Username: "demo"})
	if !errors.Is(err, ErrEmptyCredentials) {
		t.Fatalf("expected ErrEmptyCredentials, got %v", err)
	}
}

func TestClientLoginNoVerificationToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		writer.Write([]byte("<!DOCTYPE html><html><body><form></form></body></html>"))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	creds := Credentials{Username: "demo", Password: secret.Redacted("hunter2")}
	err = client.Login(context.Background(), creds)
	if !errors.Is(err, ErrNoVerificationToken) {
		t.Fatalf("expected ErrNoVerificationToken, got %v", err)
	}
}

func TestClientLoginUnreachablePortal(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(testConfig(url))
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	creds := Credentials{Username: "demo", Password: secret.Redacted("hunter2")}
	err = client.Login(context.Background(), creds)

	authErr := &AuthError{}
	if !errors.As(err, &authErr) {
		t.Fatalf("expected an *AuthError for an unreachable portal, got %v", err)
	}
}

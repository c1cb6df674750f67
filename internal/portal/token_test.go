package portal

import (
	"context"
	"errors"
	"github.com/PuerkitoBio/goquery"
	"github.com/izlytools/izly-qr/internal/portalsim"
	"github.com/izlytools/izly-qr/internal/secret"
	"regexp"
	"strings"
	"testing"
)

func document(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("could not parse the test markup: %v", err)
	}
	return doc
}

func TestExtractRuleAttribute(t *testing.T) {
	rule := ExtractRule{
		Selector:  "[data-card-token]",
		Attribute: "data-card-token",
		Pattern:   regexp.MustCompile("^[0-9A-Za-z]+$"),
	}
	doc := document(t, `<html><body><div id="balance-card" data-card-token="0123456789ABCDEF"></div></body></html>`)

	token, err := rule.Extract(doc)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	if token != "0123456789ABCDEF" {
		t.Fatalf("expected token '0123456789ABCDEF', got %q", token)
	}
}

func TestExtractRuleTextContent(t *testing.T) {
	rule := ExtractRule{Selector: "#card-number"}
	doc := document(t, `<html><body><span id="card-number">  12345678  </span></body></html>`)

	token, err := rule.Extract(doc)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	if token != "12345678" {
		t.Fatalf("expected the trimmed text content, got %q", token)
	}
}

func TestExtractRuleMissingElement(t *testing.T) {
	rule := ExtractRule{Selector: "[data-card-token]", Attribute: "data-card-token"}
	doc := document(t, `<html><body><p>nothing here</p></body></html>`)

	if _, err := rule.Extract(doc); !errors.Is(err, ErrNoCardToken) {
		t.Fatalf("expected ErrNoCardToken, got %v", err)
	}
}

func TestExtractRulePatternMismatch(t *testing.T) {
	rule := ExtractRule{
		Selector:  "[data-card-token]",
		Attribute: "data-card-token",
		Pattern:   regexp.MustCompile("^[0-9]+$"),
	}
	doc := document(t, `<html><body><div data-card-token="not-numeric!"></div></body></html>`)

	if _, err := rule.Extract(doc); !errors.Is(err, ErrCardTokenFormat) {
		t.Fatalf("expected ErrCardTokenFormat, got %v", err)
	}
}

func TestExtractTokenRoundTrip(t *testing.T) {
	server := startSimulator(t, portalsim.Account{Username: "demo", Password: "hunter2", CardToken: "0123456789ABCDEF"})
	cfg := testConfig(server.URL)

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	creds := Credentials{Username: "demo", Password: secret.Redacted("hunter2")}
	if err := client.Login(context.Background(), creds); err != nil {
		t.Fatalf("expected the login to succeed, got %v", err)
	}

	rule, err := RuleFromConfig(cfg)
	if err != nil {
		t.Fatalf("could not build the extraction rule: %v", err)
	}
	token, err := client.ExtractToken(context.Background(), rule)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	if token != "0123456789ABCDEF" {
		t.Fatalf("expected the seeded card token, got %q", token)
	}
}

func TestExtractTokenMissingOnProfilePage(t *testing.T) {
	server := startSimulator(t, portalsim.Account{Username: "demo", Password: "hunter2"})
	cfg := testConfig(server.URL)

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	creds := Credentials{Username: "demo", Password: secret.Redacted("hunter2")}
	if err := client.Login(context.Background(), creds); err != nil {
		t.Fatalf("expected the login to succeed, got %v", err)
	}

	rule, err := RuleFromConfig(cfg)
	if err != nil {
		t.Fatalf("could not build the extraction rule: %v", err)
	}
	if _, err := client.ExtractToken(context.Background(), rule); !errors.Is(err, ErrNoCardToken) {
		t.Fatalf("expected ErrNoCardToken, got %v", err)
	}
}

func TestExtractTokenWithoutLogin(t *testing.T) {
	server := startSimulator(t, portalsim.Account{Username: "demo", Password: "hunter2", CardToken: "0123456789ABCDEF"})
	cfg := testConfig(server.URL)

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("could not create the client: %v", err)
	}
	rule, err := RuleFromConfig(cfg)
	if err != nil {
		t.Fatalf("could not build the extraction rule: %v", err)
	}
	if _, err := client.ExtractToken(context.Background(), rule); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

package portal

import (
	"context"
	"github.com/PuerkitoBio/goquery"
	"github.com/izlytools/izly-qr/internal/config"
	"github.com/rs/zerolog/log"
	"regexp"
	"strings"
)

// ExtractRule represents the rule used to locate the card token within the profile page.
// An empty attribute selects the text content of the matched element instead.
type ExtractRule struct {
	Selector  string
	Attribute string
	Pattern   *regexp.Regexp
}

// RuleFromConfig builds the card token extraction rule defined by the given configuration
func RuleFromConfig(cfg *config.Config) (ExtractRule, error) {
	pattern, err := regexp.Compile(cfg.CardTokenPattern)
	if err != nil {
		return ExtractRule{}, err
	}
	return ExtractRule{
		Selector:  cfg.CardTokenSelector,
		Attribute: cfg.CardTokenAttribute,
		Pattern:   pattern,
	}, nil
}

// Extract applies the rule to the given document and returns the card token
func (rule ExtractRule) Extract(document *goquery.Document) (string, error) {
	selection := document.Find(rule.Selector).First()
	if selection.Length() == 0 {
		return "", ErrNoCardToken
	}

	var token string
	if rule.Attribute != "" {
		token, _ = selection.Attr(rule.Attribute)
	} else {
		token = selection.Text()
	}
	token = strings.TrimSpace(token)

	if token == "" {
		return "", ErrNoCardToken
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(token) {
		return "", ErrCardTokenFormat
	}
	return token, nil
}

// ExtractToken fetches the profile page using the authenticated session and extracts the card token
// using the given rule
func (client *Client) ExtractToken(ctx context.Context, rule ExtractRule) (string, error) {
	document, err := client.fetchDocument(ctx, client.config.PortalProfilePath)
	if err != nil {
		return "", err
	}
	token, err := rule.Extract(document)
	if err != nil {
		return "", err
	}
	log.Debug().Int("token_length", len(token)).Msg("card token extracted")
	return token, nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/izlytools/izly-qr/internal/config"
	"github.com/izlytools/izly-qr/internal/portal"
	"github.com/izlytools/izly-qr/internal/qr"
	"github.com/izlytools/izly-qr/internal/secret"
	"github.com/izlytools/izly-qr/internal/validate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"os"
	"strings"
)

// NewRootCmd creates the izlyqr root command
func NewRootCmd() *cobra.Command {
	var (
		codes    int
		username string
		password string
		size     int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "izlyqr",
		Short: "Generate izly payment QR codes as a single image",
		Long: `izlyqr logs in to the izly portal, extracts the balance card token of the
account and renders it as one or more QR codes composited into a single image.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(codes, username, password, size, output)
		},
	}

	cmd.Flags().IntVarP(&codes, "codes", "q", 1, "number of QR codes to generate (1-3)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "portal username (prompted for when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "portal password (prompted for when omitted)")
	cmd.Flags().IntVarP(&size, "size", "s", 300, "pixel size of a single QR code")
	cmd.Flags().StringVarP(&output, "output", "o", "qrcode.png", "output image path (png, jpg, jpeg or gif)")

	return cmd
}

// run executes the sequential pipeline: validate, authenticate, extract, encode, composite, write
func run(codes int, username, password string, size int, output string) error {
	// Validate the arguments before anything touches the network
	if err := validate.Codes(codes); err != nil {
		return err
	}
	if err := validate.Size(size); err != nil {
		return err
	}
	if err := validate.Output(output); err != nil {
		return err
	}

	log.Logger = log.Logger.With().Str("run_id", uuid.NewString()).Logger()

	// Load the application configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	rule, err := portal.RuleFromConfig(cfg)
	if err != nil {
		return err
	}

	// Complete the credentials interactively if needed
	creds, err := completeCredentials(username, password)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Authenticate against the portal
	log.Info().Str("portal", cfg.PortalBaseURL).Msg("logging in...")
	client, err := portal.NewClient(cfg)
	if err != nil {
		return err
	}
	if err := client.Login(ctx, creds); err != nil {
		return err
	}

	// Extract the balance card token from the profile page
	log.Info().Msg("extracting the card token...")
	token, err := client.ExtractToken(ctx, rule)
	if err != nil {
		return err
	}

	// Render the QR codes and composite them into the output file
	log.Info().Int("codes", codes).Msg("rendering the QR codes...")
	images, err := qr.NewEncoder(size).Encode(token, codes)
	if err != nil {
		return err
	}
	if err := qr.WriteFile(output, qr.Composite(images, size)); err != nil {
		return err
	}

	log.Info().Str("output", output).Msg("done!")
	return nil
}

// completeCredentials prompts for the username and/or password if they were not given as flags.
// The password prompt does not echo.
func completeCredentials(username, password string) (portal.Credentials, error) {
	if username == "" {
		fmt.Fprint(os.Stderr, "Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return portal.Credentials{}, err
		}
		username = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return portal.Credentials{}, err
		}
		password = string(raw)
	}
	return portal.Credentials{
		Username: username,
		Password: secret.Redacted(password),
	}, nil
}

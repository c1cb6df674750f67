// Package main is the entry point of the portal simulator used for offline development.
package main

import (
	"errors"
	"github.com/izlytools/izly-qr/internal/portalsim"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"net/http"
	"os"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})

	var (
		listen    string
		username  string
		password  string
		cardToken string
	)

	cmd := &cobra.Command{
		Use:   "portalsim",
		Short: "Serve a local simulation of the izly portal's login/profile contract",
		Long: `portalsim serves the login and profile pages izlyqr expects from the real portal,
seeded with a single account. Point izlyqr at it via IZLY_PORTAL_BASE_URL.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			service, err := portalsim.New([]portalsim.Account{{
				Username:  username,
				Password:  password,
				CardToken: cardToken,
			}})
			if err != nil {
				return err
			}

			log.Info().Str("listen", listen).Str("username", username).Msg("starting up the simulated portal...")
			if err := service.Startup(listen); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVarP(&username, "username", "u", "demo", "username of the seeded account")
	cmd.Flags().StringVarP(&password, "password", "p", "demo", "password of the seeded account")
	cmd.Flags().StringVarP(&cardToken, "card-token", "t", "0123456789ABCDEF", "card token embedded into the profile page")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("portalsim failed")
	}
}

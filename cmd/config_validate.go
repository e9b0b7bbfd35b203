package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jdscolam/mndp-firebase-auth/internal/signers"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Parses the configuration file and builds the signer to check its key.
Validator and directory settings are checked without contacting them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadConfig()
		if err != nil {
			log.Error().Err(err).Msg("Configuration is invalid.")
			return err
		}
		if _, err := signers.Build(cfg.Signer); err != nil {
			log.Error().Err(err).Msg("Signer configuration is invalid.")
			return err
		}

		log.Info().Msg("Configuration is valid.")
		fmt.Printf("  %s: %s (%s)\n", faint("Validator"), cfg.Validator.Name, cfg.Validator.Type)
		fmt.Printf("  %s: %s (%s)\n", faint("Directory"), cfg.Directory.Name, cfg.Directory.Type)
		fmt.Printf("  %s:    %s (%s)\n", faint("Signer"), cfg.Signer.Name, cfg.Signer.Type)
		fmt.Printf("  %s:     %s\n", faint("Route"), cfg.Server.ExchangeRoute)
		fmt.Printf("  %s:%s\n", faint("Role claim"), " "+cfg.Roles.Claim)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)

	f.bindConfigFlag(configValidateCmd.Flags())
}

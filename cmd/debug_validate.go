package cmd

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

var debugValidateToken string

var debugValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a credential against the configured identity provider",
	Long: `Runs only the credential validation of the pipeline and dumps the
resulting identity. No directory lookup and no token is minted.`,
	Example: `  mndpauth debug validate -f mndpauth.yaml --token abc123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		validator, err := f.BuildValidator(cmd.Context())
		if err != nil {
			return err
		}

		log.Debug().Str("validator", validator.Name()).Msg("Validating credential...")
		identity, err := validator.Validate(cmd.Context(), debugValidateToken)
		if err != nil {
			exErr := core.AsExchangeError(err, core.KindTransport)
			log.Error().
				Err(exErr.Unwrap()).
				Str("kind", string(exErr.Kind)).
				Int("code", exErr.StatusCode()).
				Msgf("Validation failed: %s", exErr.Message)
			return exErr
		}

		log.Info().Msgf("Credential is valid:\n%s", spew.Sdump(identity))
		return nil
	},
}

func init() {
	debugCmd.AddCommand(debugValidateCmd)

	debugValidateCmd.Flags().StringVarP(&debugValidateToken, "token", "t", "", "The provider credential to validate")
	_ = debugValidateCmd.MarkFlagRequired("token")
}

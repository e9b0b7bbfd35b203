package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

var mintWithRole bool

var mintCmd = &cobra.Command{
	Use:   "mint <username>",
	Short: "Force-mint a token locally for testing",
	Long: `Test command that bypasses credential validation and the directory lookup
to test a signer configuration. The role claim is added with --role.`,
	Example: `  mndpauth debug mint -f mndpauth.yaml dj_sam --role`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issuer, err := f.BuildIssuer()
		if err != nil {
			return err
		}

		token, err := issuer.Issue(cmd.Context(), core.EnrichedIdentity{
			Identity: core.Identity{Username: args[0]},
			HasRole:  mintWithRole,
		})
		if err != nil {
			return fmt.Errorf("minting failed: %w", err)
		}
		log.Debug().Str("token_fp", token.Fingerprint).Msg("Token minted successfully")

		// the signature was just created by us, only the payload is of interest
		parsed, _, err := jwt.NewParser().ParseUnverified(token.Value, jwt.MapClaims{})
		if err != nil {
			return fmt.Errorf("failed to decode minted token: %w", err)
		}

		fmt.Println(bold("\n── Minted Token ──"))
		fmt.Printf("  %s:  %s\n", faint("Subject"), token.Subject)
		fmt.Printf("  %s:  %s\n", faint("Expires"), token.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("  %s:  %v\n", faint("Header"), parsed.Header)
		fmt.Printf("  %s:\n%s", faint("Claims"), spew.Sdump(parsed.Claims))
		fmt.Printf("\n%s\n", token.Value)
		return nil
	},
}

func init() {
	debugCmd.AddCommand(mintCmd)

	mintCmd.Flags().BoolVar(&mintWithRole, "role", false, "Mint as if the user held the role")
}

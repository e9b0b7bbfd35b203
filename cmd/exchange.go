package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	exchangeToken string
	exchangeGroup string
	exchangeRaw   bool
)

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Exchange a provider credential at a running gateway",
	Long: `Sends the credential to the gateway given by --server and prints the signed
token it returns. With --group the gateway checks the role of that group.`,
	Example: `  mndpauth exchange --server http://localhost:8080 --token abc123
  mndpauth exchange --server http://localhost:8080 --token abc123 --group mondaynight --raw`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		log.Debug().Str("group", exchangeGroup).Msg("Requesting token exchange...")
		resp, correlation, err := cli.Exchange(cmd.Context(), exchangeToken, exchangeGroup)
		if err != nil {
			return logError(err, correlation, "token exchange failed")
		}

		if exchangeRaw {
			fmt.Println(resp.Token)
			return nil
		}

		fmt.Println(bold("\n── Token Exchanged ──"))
		fmt.Printf("  %s:           %s\n", faint("User"), green(resp.User.Username))
		if exchangeGroup != "" {
			fmt.Printf("  %s:          %s\n", faint("Group"), exchangeGroup)
		}
		fmt.Printf("  %s: %s\n", faint("Correlation ID"), correlation)
		fmt.Printf("  %s:          %s\n", faint("Token"), truncate(resp.Token, 64))
		fmt.Println(faint("\n  use --raw to print the full token"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exchangeCmd)

	exchangeCmd.Flags().StringVarP(&exchangeToken, "token", "t", "", "The provider credential to exchange")
	exchangeCmd.Flags().StringVarP(&exchangeGroup, "group", "g", "", "The group whose role should be checked")
	exchangeCmd.Flags().BoolVar(&exchangeRaw, "raw", false, "Only print the signed token")

	_ = exchangeCmd.MarkFlagRequired("token")
}

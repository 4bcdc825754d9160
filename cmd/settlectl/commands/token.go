package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
)

func tokenCmd() *cobra.Command {
	var (
		displayName string
		secret      string
		ttl         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token MEMBER_ID",
		Short: "Mint a bearer token for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if secret == "" {
				secret = cfg.JWTSecret
			}
			if ttl == 0 {
				ttl = cfg.TokenTTL
			}

			token, err := auth.NewJWTManager(secret, ttl).Generate(args[0], displayName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "display name carried in the token")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (default JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default TOKEN_TTL)")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cloudvision_backend/internal/app/config"
	jwtmw "cloudvision_backend/internal/platform/jwt"
)

// newIssueTokenCmd はAPIクライアント用のJWTを発行するコマンドです。
func newIssueTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issue-token <subject>",
		Short: "Mint a bearer token for an API client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is not set (CLOUDVISION_AUTH_JWT_SECRET)")
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}

			token, err := jwtmw.NewGenerator(cfg.Auth.JWTSecret, ttl).GenerateToken(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: auth.token_ttl)")
	return cmd
}

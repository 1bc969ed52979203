package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/auditlog"
	"nathanbeddoewebdev/rscloud/internal/cache"
	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/providers"
	"nathanbeddoewebdev/rscloud/internal/providers/rackspace"
	"nathanbeddoewebdev/rscloud/internal/services/auth"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <variant>",
		Short: "Store an API key for a provider variant",
		Long: `Store an API key for a provider variant in the local keychain.

Any cached session for the variant is dropped. With --verify the key is
exchanged for a session right away, which needs the username config key.

Examples:
  rscloud auth login rackspace
  rscloud auth login rackspace-uk --verify`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}

	cmd.Flags().String("key", "", "API key (optional, overrides prompt)")
	cmd.Flags().Bool("verify", false, "Authenticate with the key before returning")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	variant := auth.NormalizeVariant(args[0])
	if err := checkVariant(variant); err != nil {
		return err
	}
	cmdutil.Tag(cmd, auditlog.Metadata{Variant: variant})

	key, _ := cmd.Flags().GetString("key")
	key = strings.TrimSpace(key)
	if key == "" {
		var err error
		key, err = cmdutil.ReadSecret(cmd, "Enter API key: ")
		if err != nil {
			return err
		}
	}
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	if err := cmdutil.Store().SetAPIKey(variant, key); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for variant %s\n", variant)

	verify, _ := cmd.Flags().GetBool("verify")
	authn, err := authenticator(variant, key)
	if err != nil {
		if verify {
			return err
		}
		logger.Ctx(cmd.Context()).Debug().Err(err).Str("variant", variant).Msg("skipping session reset")
		return nil
	}
	if err := authn.Invalidate(); err != nil {
		logger.Ctx(cmd.Context()).Debug().Err(err).Msg("failed to drop cached session")
	}

	if verify {
		if err := verifyKey(cmd.Context(), authn); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Key verified.")
	}
	return nil
}

func authenticator(variant, key string) (*rackspace.KeyAuthenticator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Username == "" {
		return nil, errors.New("no username configured; run 'rscloud config set username <name>'")
	}
	v, err := providers.ResolveVariant(variant, cfg)
	if err != nil {
		return nil, err
	}
	return rackspace.NewKeyAuthenticator(v.AuthURL, cfg.Username, key, nil, cache.NewDefault()), nil
}

func verifyKey(ctx context.Context, authn *rackspace.KeyAuthenticator) error {
	if _, err := authn.Session(ctx); err != nil {
		return fmt.Errorf("key saved but verification failed: %w", err)
	}
	return nil
}

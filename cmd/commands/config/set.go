package config

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/providers"
	"nathanbeddoewebdev/rscloud/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. An empty value clears the key.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  rscloud config set default-variant rackspace-uk\n" +
			"  rscloud config set username alice\n" +
			"  rscloud config set auth-url https://keystone.example.com/v1.0",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

// validators holds checks that need more than the key's own Validate, such
// as the provider registry.
var validators = map[string]func(value string) error{
	"default-variant": validateVariant,
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(util.NormalizeKey(args[0]))
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := strings.TrimSpace(args[1])
	if value != "" {
		if spec.Validate != nil {
			if err := spec.Validate(value); err != nil {
				return fmt.Errorf("invalid %s: %w", spec.Name, err)
			}
		}
		if validate, ok := validators[spec.Name]; ok {
			if err := validate(value); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", spec.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, spec.Get(cfg))
	return nil
}

// validateVariant checks that the given name is a registered variant.
func validateVariant(name string) error {
	known := providers.List()
	if !slices.Contains(known, util.NormalizeKey(name)) {
		return fmt.Errorf("unknown variant %q (registered: %v)", name, known)
	}
	return nil
}

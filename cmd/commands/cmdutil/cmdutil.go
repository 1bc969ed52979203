// Package cmdutil holds helpers shared by the command groups: variant
// resolution, provider lookup, audit tagging and output formatting.
package cmdutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nathanbeddoewebdev/rscloud/internal/auditlog"
	"nathanbeddoewebdev/rscloud/internal/catalogcache"
	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/providers"
	"nathanbeddoewebdev/rscloud/internal/services/auth"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AuditAnnotation marks a command whose runs are written to the audit log.
const AuditAnnotation = "rscloud/audit"

// Audited returns the annotations for a command that should be audited.
func Audited() map[string]string {
	return map[string]string{AuditAnnotation: "true"}
}

// IsAudited reports whether cmd carries the audit annotation.
func IsAudited(cmd *cobra.Command) bool {
	return cmd.Annotations[AuditAnnotation] == "true"
}

// AddVariantFlag registers the persistent --variant flag on a command group.
func AddVariantFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String("variant", "", "Provider variant to use (overrides default-variant)")
}

// ResolveVariant ensures the --variant flag has a value, falling back to the
// configured default when the flag was not explicitly passed. It is meant
// to be used as a PersistentPreRunE.
func ResolveVariant(cmd *cobra.Command, args []string) error {
	flag := cmd.Flag("variant")
	if flag == nil {
		return errors.New("command has no --variant flag")
	}

	if !flag.Changed {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.DefaultVariant == "" {
			return fmt.Errorf("no variant specified: use --variant or set a default with 'rscloud config set default-variant <name>' (known: %s)",
				strings.Join(providers.List(), ", "))
		}
		if err := flag.Value.Set(cfg.DefaultVariant); err != nil {
			return err
		}
	}

	Tag(cmd, auditlog.Metadata{Variant: flag.Value.String()})
	return nil
}

// Provider builds the provider for the resolved --variant.
func Provider(cmd *cobra.Command) (domain.ComputeProvider, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return providers.Get(cmd.Flag("variant").Value.String(), Store(), cfg)
}

// CatalogKey returns the catalog cache key of kind for the resolved
// variant and the configured account.
func CatalogKey(cmd *cobra.Command, kind string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return catalogcache.Key(cmd.Flag("variant").Value.String(), cfg.Username, kind), nil
}

var storeOverride auth.Store

// SetStore replaces the credential store. Intended for testing.
func SetStore(s auth.Store) { storeOverride = s }

// ResetStore restores the keychain-backed store. Intended for testing.
func ResetStore() { storeOverride = nil }

// Store returns the credential store commands read API keys from.
func Store() auth.Store {
	if storeOverride != nil {
		return storeOverride
	}
	return auth.DefaultStore()
}

// Tag merges audit metadata into the command's context.
func Tag(cmd *cobra.Command, meta auditlog.Metadata) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), meta))
}

// TagNode records a node as the subject of the running command.
func TagNode(cmd *cobra.Command, id, name string) {
	Tag(cmd, auditlog.Metadata{ResourceType: "node", ResourceID: id, ResourceName: name})
}

// AddOutputFlag registers -o/--output with table as the default.
func AddOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
}

// Output returns the validated --output value.
func Output(cmd *cobra.Command) (string, error) {
	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "", "table":
		return "table", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported output format %q", output)
	}
}

// PrintJSON encodes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewTable returns a borderless table writing to w.
func NewTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("   ")
	table.SetNoWhiteSpace(true)
	return table
}

// DashIfEmpty returns "-" for an empty string.
func DashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// IsInteractive reports whether stdout is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ReadSecret prompts on stderr and reads a line from stdin without echo.
func ReadSecret(cmd *cobra.Command, prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal; pass the value with a flag")
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

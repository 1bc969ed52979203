package audit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/rscloud/internal/auditlog"
	"nathanbeddoewebdev/rscloud/internal/services/auth"

	"github.com/spf13/cobra"
)

func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit entries by age, variant or outcome",
		Long: `Delete audit entries matching every given filter. At least one filter
is required; --dry-run only reports how many entries would go.

Examples:
  rscloud audit prune --older-than 30d
  rscloud audit prune --variant openstack
  rscloud audit prune --older-than 72h --outcome error --dry-run`,
		Args:         cobra.NoArgs,
		RunE:         runPrune,
		SilenceUsage: true,
	}

	cmd.Flags().String("older-than", "", "Only entries older than this duration (e.g. 30d, 72h)")
	cmd.Flags().String("variant", "", "Only entries of this provider variant")
	cmd.Flags().String("outcome", "", "Only entries with this outcome: success or error")
	cmd.Flags().Bool("dry-run", false, "Count matching entries without deleting them")

	return cmd
}

func pruneFilter(cmd *cobra.Command) (auditlog.PruneFilter, error) {
	var filter auditlog.PruneFilter

	olderThan, _ := cmd.Flags().GetString("older-than")
	if olderThan = strings.TrimSpace(olderThan); olderThan != "" {
		d, err := parseDuration(olderThan)
		if err != nil {
			return filter, err
		}
		filter.OlderThan = d
	}

	variant, _ := cmd.Flags().GetString("variant")
	filter.Variant = auth.NormalizeVariant(variant)

	outcome, _ := cmd.Flags().GetString("outcome")
	switch outcome = strings.ToLower(strings.TrimSpace(outcome)); outcome {
	case "", auditlog.OutcomeSuccess, auditlog.OutcomeError:
		filter.Outcome = outcome
	default:
		return filter, fmt.Errorf("invalid --outcome %q: use %s or %s", outcome, auditlog.OutcomeSuccess, auditlog.OutcomeError)
	}

	if filter == (auditlog.PruneFilter{}) {
		return filter, errors.New("at least one of --older-than, --variant or --outcome is required")
	}
	return filter, nil
}

func runPrune(cmd *cobra.Command, args []string) error {
	filter, err := pruneFilter(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	if dryRun {
		n, err := repo.CountPrunable(filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Would remove %s.\n", entries(n))
		return nil
	}

	removed, err := repo.Prune(filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", entries(removed))
	return nil
}

func entries(n int64) string {
	if n == 1 {
		return "1 audit entry"
	}
	return fmt.Sprintf("%d audit entries", n)
}

// parseDuration accepts time.ParseDuration syntax plus a whole-day "Nd" form.
func parseDuration(input string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(input, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", input)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}

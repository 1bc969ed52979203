package audit

import (
	"fmt"
	"time"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/auditlog"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		Long: `List recent audit entries stored locally.

Examples:
  rscloud audit list
  rscloud audit list --limit 50
  rscloud audit list --command "rscloud node create"
  rscloud audit list --variant rackspace-uk -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("command", "", "Filter by exact command path")
	cmd.Flags().String("variant", "", "Filter by provider variant")
	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	command, _ := cmd.Flags().GetString("command")
	variant, _ := cmd.Flags().GetString("variant")
	if command != "" && variant != "" {
		return fmt.Errorf("--command and --variant cannot be combined")
	}

	output, err := cmdutil.Output(cmd)
	if err != nil {
		return err
	}

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []auditlog.AuditEntry
	switch {
	case command != "":
		entries, err = repo.ListByCommand(command, limit)
	case variant != "":
		entries, err = repo.ListByVariant(variant, limit)
	default:
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		return cmdutil.PrintJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
		return nil
	}

	table := cmdutil.NewTable(cmd.OutOrStdout(), "TIME", "COMMAND", "VARIANT", "OUTCOME", "DURATION", "RESOURCE", "DETAIL")
	for _, entry := range entries {
		table.Append([]string{
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.Command,
			cmdutil.DashIfEmpty(entry.Variant),
			entry.Outcome,
			formatDuration(entry.DurationMs),
			formatResource(entry),
			cmdutil.DashIfEmpty(entry.Detail),
		})
	}
	table.Render()
	return nil
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

// formatResource renders "type:id (name)", omitting missing parts.
func formatResource(entry auditlog.AuditEntry) string {
	if entry.ResourceType == "" && entry.ResourceID == "" && entry.ResourceName == "" {
		return "-"
	}

	resource := entry.ResourceType
	if entry.ResourceID != "" {
		if resource != "" {
			resource += ":" + entry.ResourceID
		} else {
			resource = entry.ResourceID
		}
	}
	if entry.ResourceName != "" {
		if resource != "" {
			resource += " (" + entry.ResourceName + ")"
		} else {
			resource = entry.ResourceName
		}
	}
	return resource
}

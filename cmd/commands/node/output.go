package node

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var stateColors = map[domain.NodeState]lipgloss.Color{
	domain.NodeStateRunning:    lipgloss.Color("10"),
	domain.NodeStatePending:    lipgloss.Color("11"),
	domain.NodeStateRebooting:  lipgloss.Color("11"),
	domain.NodeStateTerminated: lipgloss.Color("9"),
	domain.NodeStateUnknown:    lipgloss.Color("8"),
}

// renderState colors a lifecycle state. Color is dropped automatically
// when the output is not a terminal.
func renderState(state domain.NodeState) string {
	color, ok := stateColors[state]
	if !ok {
		return string(state)
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(state))
}

func printNodesTable(w io.Writer, nodes []domain.Node) {
	table := cmdutil.NewTable(w, "ID", "NAME", "STATE", "PUBLIC IP", "PRIVATE IP", "IMAGE", "FLAVOR")
	for _, n := range nodes {
		table.Append([]string{
			n.ID,
			n.Name,
			string(n.State),
			cmdutil.DashIfEmpty(summarizeIPs(n.PublicIPs)),
			cmdutil.DashIfEmpty(summarizeIPs(n.PrivateIPs)),
			cmdutil.DashIfEmpty(n.Extra.ImageID),
			cmdutil.DashIfEmpty(n.Extra.FlavorID),
		})
	}
	table.Render()
}

// printNodeDetail prints a vertical key-value listing of a node.
func printNodeDetail(w io.Writer, n *domain.Node) {
	table := cmdutil.NewTable(w)
	table.Append([]string{"ID:", n.ID})
	table.Append([]string{"Name:", n.Name})
	table.Append([]string{"State:", renderState(n.State)})
	table.Append([]string{"Variant:", n.Driver})
	table.Append([]string{"Image:", cmdutil.DashIfEmpty(n.Extra.ImageID)})
	table.Append([]string{"Flavor:", cmdutil.DashIfEmpty(n.Extra.FlavorID)})
	if n.Extra.HostID != "" {
		table.Append([]string{"Host:", n.Extra.HostID})
	}
	table.Append([]string{"Public IPs:", cmdutil.DashIfEmpty(strings.Join(n.PublicIPs, ", "))})
	table.Append([]string{"Private IPs:", cmdutil.DashIfEmpty(strings.Join(n.PrivateIPs, ", "))})
	if n.Extra.URI != "" {
		table.Append([]string{"URI:", n.Extra.URI})
	}
	for _, key := range slices.Sorted(maps.Keys(n.Extra.Metadata)) {
		table.Append([]string{"Meta " + key + ":", n.Extra.Metadata[key]})
	}
	if n.Extra.Password != "" {
		table.Append([]string{"Password:", n.Extra.Password})
	}
	table.Render()
}

func printIPAddresses(w io.Writer, ips *domain.IPAddressSet) {
	table := cmdutil.NewTable(w, "TYPE", "ADDRESS")
	for _, ip := range ips.Public {
		table.Append([]string{"public", ip})
	}
	for _, ip := range ips.Private {
		table.Append([]string{"private", ip})
	}
	table.Render()
}

func summarizeIPs(s []string) string {
	if len(s) == 0 {
		return ""
	}
	if len(s) > 1 {
		return fmt.Sprintf("%s (+%d)", s[0], len(s)-1)
	}
	return s[0]
}

package catalog

import (
	"io"
	"maps"
	"slices"
	"strconv"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"
)

func printSizes(w io.Writer, sizes []domain.Size) {
	table := cmdutil.NewTable(w, "ID", "NAME", "RAM (MB)", "DISK (GB)", "PRICE/HR")
	for _, s := range sizes {
		price := "-"
		if !s.Price.IsZero() {
			price = s.Price.StringFixed(3)
		}
		table.Append([]string{s.ID, s.Name, strconv.Itoa(s.RAM), strconv.Itoa(s.Disk), price})
	}
	table.Render()
}

func printImages(w io.Writer, images []domain.Image) {
	table := cmdutil.NewTable(w, "ID", "NAME", "STATUS", "UPDATED")
	for _, img := range images {
		table.Append([]string{
			img.ID,
			img.Name,
			cmdutil.DashIfEmpty(img.Extra.Status),
			cmdutil.DashIfEmpty(img.Extra.Updated),
		})
	}
	table.Render()
}

func printLocations(w io.Writer, locations []domain.Location) {
	table := cmdutil.NewTable(w, "ID", "NAME", "COUNTRY", "VARIANT")
	for _, loc := range locations {
		table.Append([]string{loc.ID, loc.Name, loc.Country, loc.Driver})
	}
	table.Render()
}

var rateColumns = []string{"verb", "URI", "regex", "value", "remaining", "unit", "resetTime"}

func printLimits(w io.Writer, limits *domain.Limits) {
	if len(limits.Rate) > 0 {
		table := cmdutil.NewTable(w, "VERB", "URI", "REGEX", "VALUE", "REMAINING", "UNIT", "RESET")
		for _, rate := range limits.Rate {
			row := make([]string, len(rateColumns))
			for i, col := range rateColumns {
				row[i] = cmdutil.DashIfEmpty(rate[col])
			}
			table.Append(row)
		}
		table.Render()
		io.WriteString(w, "\n")
	}

	table := cmdutil.NewTable(w, "LIMIT", "VALUE")
	for _, name := range slices.Sorted(maps.Keys(limits.Absolute)) {
		table.Append([]string{name, limits.Absolute[name]})
	}
	table.Render()
}

package probe

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimLabel  = color.New(color.FgHiBlack).SprintFunc()
)

// render writes one row per probe followed by a summary line.
func render(w io.Writer, stats *Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Probe", "Path", "Status", "Latency", "Result", "Detail"})
	table.SetAutoWrapText(false)

	for _, r := range stats.Results {
		status := "-"
		if r.Status > 0 {
			status = strconv.Itoa(r.Status)
		}
		verdict, detail := passLabel("PASS"), r.Detail
		if !r.OK() {
			verdict, detail = failLabel("FAIL"), r.Err.Error()
		}
		table.Append([]string{
			r.Name,
			dimLabel(r.Path),
			status,
			r.Latency.Round(time.Millisecond).String(),
			verdict,
			detail,
		})
	}
	table.Render()

	summary := passLabel
	if stats.Failed > 0 {
		summary = failLabel
	}
	_, _ = fmt.Fprintf(w, "%s  run %s in %s\n",
		summary(fmt.Sprintf("%d passed, %d failed", stats.Passed, stats.Failed)),
		stats.RunID,
		stats.Duration.Round(time.Millisecond))
}

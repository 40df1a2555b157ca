package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/mintup/mintup/internal/core"
)

// printReport renders the run outcome as a table plus a one-line
// summary. Diffs (plan mode) follow the table per pending item.
func printReport(ctx *core.SystemContext, report *core.Report) {
	rows := pterm.TableData{{"TYPE", "NAME", "OUTCOME", "MESSAGE"}}
	for _, item := range report.Items {
		msg := item.Message
		if item.Err != nil {
			msg = item.Err.Error()
		}
		rows = append(rows, []string{item.Type, item.Name, colorOutcome(item.Outcome), msg})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithWriter(ctx.Stdout).WithData(rows).Render()

	for _, item := range report.Items {
		if item.Diff == "" {
			continue
		}
		pterm.DefaultSection.WithWriter(ctx.Stdout).Printfln("%s %s", item.Type, item.Name)
		fmt.Fprint(ctx.Stdout, item.Diff)
	}

	duration := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
	summary := fmt.Sprintf("%d changed, %d satisfied, %d failed, %d skipped in %s (run %s)",
		report.Count(core.OutcomeChanged),
		report.Count(core.OutcomeSatisfied),
		report.Count(core.OutcomeFailed),
		report.Count(core.OutcomeSkipped),
		duration, report.RunID)

	if report.Count(core.OutcomeFailed) > 0 {
		pterm.Warning.WithWriter(ctx.Stdout).Println(summary)
		return
	}
	pterm.Success.WithWriter(ctx.Stdout).Println(summary)
}

func colorOutcome(outcome core.Outcome) string {
	switch outcome {
	case core.OutcomeChanged:
		return pterm.Yellow(string(outcome))
	case core.OutcomeFailed:
		return pterm.Red(string(outcome))
	case core.OutcomeSkipped:
		return pterm.Gray(string(outcome))
	default:
		return pterm.Green(string(outcome))
	}
}

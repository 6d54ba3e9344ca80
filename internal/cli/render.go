package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/pricing"
)

// RenderQuote renders an itemized quote breakdown: one row per line item,
// then the subtotal, any applied minimum-job upcharge, the discount, and the
// final price.
func RenderQuote(q *pricing.Quote) string {
	var b strings.Builder

	b.WriteString(FormatTitle(fmt.Sprintf("Quote — %s", q.ModelName)))
	b.WriteString("\n")

	header := fmt.Sprintf("%-44s %10s %8s %12s", "Item", "Rate", "Qty", "Amount")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, line := range q.Lines {
		b.WriteString(fmt.Sprintf("%-44s %10s %8s %12s\n",
			truncate(line.Description, 44),
			line.UnitRate.StringFixed(2),
			line.Quantity.String(),
			line.Amount.StringFixed(2)))
	}

	b.WriteString(SubtleStyle.Render(strings.Repeat("─", 78)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-64s %12s\n", "Subtotal", q.RawSubtotal.StringFixed(2)))
	if q.AppliedTier > 0 {
		label := fmt.Sprintf("Minimum job upcharge (tier %d)", q.AppliedTier)
		b.WriteString(fmt.Sprintf("%-64s %12s\n", label, q.Upcharge.StringFixed(2)))
	}
	b.WriteString(fmt.Sprintf("%-64s %12s\n", "Gross job cost", q.GrossJobCost.StringFixed(2)))
	label := fmt.Sprintf("Discount (%s%%)", q.DiscountPercent.String())
	b.WriteString(fmt.Sprintf("%-64s %12s\n", label, "-"+q.Discount.StringFixed(2)))
	b.WriteString(BoldStyle.Render(fmt.Sprintf("%-64s %12s", "Final price", q.Final.StringFixed(2))))
	b.WriteString("\n")

	return b.String()
}

// RenderChecklist renders a job's checklist with completion boxes.
func RenderChecklist(items []model.ChecklistItem) string {
	if len(items) == 0 {
		return SubtleStyle.Render("No checklist items for this stage.") + "\n"
	}

	var b strings.Builder
	for _, item := range items {
		box := UncheckedBox
		style := lipgloss.NewStyle()
		if item.Completed {
			box = CheckedBox
			style = SuccessStyle
		}
		line := fmt.Sprintf("%s %s", box, item.Task)
		if item.Assignee != "" {
			line += SubtleStyle.Render(fmt.Sprintf("  (%s)", item.Assignee))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBoard renders the pipeline as side-by-side stage columns, each
// listing its jobs.
func RenderBoard(jobs []model.Job) string {
	byStage := make(map[model.JobStatus][]model.Job)
	for _, j := range jobs {
		byStage[j.Status] = append(byStage[j.Status], j)
	}

	columns := make([]string, 0, len(model.PipelineStages))
	for _, stage := range model.PipelineStages {
		var col strings.Builder
		col.WriteString(BoldStyle.Render(stage.Title()))
		col.WriteString("\n")
		for _, j := range byStage[stage] {
			col.WriteString(fmt.Sprintf("%s\n", truncate(j.ClientName, 22)))
			col.WriteString(SubtleStyle.Render(truncate(j.Trade+" · "+string(j.JobSize), 22)))
			col.WriteString("\n")
		}
		if len(byStage[stage]) == 0 {
			col.WriteString(SubtleStyle.Render("(empty)"))
			col.WriteString("\n")
		}
		columns = append(columns, ColumnStyle.Render(col.String()))
	}

	// Two rows of four columns keeps the board inside a normal terminal.
	top := lipgloss.JoinHorizontal(lipgloss.Top, columns[:4]...)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, columns[4:]...)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom) + "\n"
}

// RenderJob renders a single job's full detail view.
func RenderJob(j *model.Job) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Client:   %s", j.ClientName))
	if j.SpouseName != "" {
		b.WriteString(fmt.Sprintf(" & %s", j.SpouseName))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Address:  %s\n", j.Address))
	b.WriteString(fmt.Sprintf("Contact:  %s  %s\n", j.Phone, j.Email))
	b.WriteString(fmt.Sprintf("Trade:    %s\n", j.Trade))
	b.WriteString(fmt.Sprintf("Stage:    %s\n", j.Status.Title()))
	b.WriteString(fmt.Sprintf("Size:     %s    Priority: %s\n", j.JobSize, j.Priority))
	if j.Pricing.Total != 0 || j.Pricing.Paid != 0 {
		b.WriteString(fmt.Sprintf("Pricing:  total %.2f, paid %.2f, balance %.2f\n",
			j.Pricing.Total, j.Pricing.Paid, j.Pricing.Balance))
	}
	if j.Notes != "" {
		b.WriteString(fmt.Sprintf("Notes:    %s\n", j.Notes))
	}

	b.WriteString("\n")
	b.WriteString(BoldStyle.Render("Checklist"))
	b.WriteString("\n")
	b.WriteString(RenderChecklist(j.Checklist))

	return RenderBox(fmt.Sprintf("Job %s", j.ID), b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
)

// ItemLabeler resolves item IDs to display titles. Unknown IDs fall back to
// a truncated ID.
type ItemLabeler func(id string) string

// TruncatedIDLabeler is the fallback labeler when no items are loaded.
func TruncatedIDLabeler(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// LabelerFromItems builds an ItemLabeler over a loaded item list.
func LabelerFromItems(items []*domain.PlanItem) ItemLabeler {
	byID := make(map[string]string, len(items))
	for _, it := range items {
		byID[it.ID] = it.Title
	}
	return func(id string) string {
		if title, ok := byID[id]; ok {
			return title
		}
		return TruncatedIDLabeler(id)
	}
}

// FormatLinkResponse renders the outcome of a link operation.
func FormatLinkResponse(resp *contract.LinkResponse, label ItemLabeler) string {
	if label == nil {
		label = TruncatedIDLabeler
	}
	var b strings.Builder

	for _, e := range resp.AcceptedEdges {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			StyleGreen.Render("+"),
			StyleFg.Render(label(e.ItemID)),
			DepTypeLabel(e.Type, e.LagDays),
			StyleDim.Render("after "+label(e.PredecessorID)))
	}
	for _, e := range resp.RemovedEdges {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			StyleRed.Render("-"),
			StyleFg.Render(label(e.ItemID)),
			DepTypeLabel(e.Type, e.LagDays),
			StyleDim.Render("after "+label(e.PredecessorID)))
	}
	for _, e := range resp.SkippedEdges {
		fmt.Fprintf(&b, "%s %s already depends on %s\n",
			StyleDim.Render("="),
			StyleDim.Render(label(e.ItemID)),
			StyleDim.Render(label(e.PredecessorID)))
	}
	if len(resp.AcceptedEdges) == 0 && len(resp.RemovedEdges) == 0 && len(resp.SkippedEdges) == 0 {
		b.WriteString(StyleDim.Render("No link changes.") + "\n")
	}

	if len(resp.UpdatedDates) > 0 {
		fmt.Fprintf(&b, "%s\n", StyleDim.Render(fmt.Sprintf("%d item(s) rescheduled", len(resp.UpdatedDates))))
	}
	if resp.Applied != nil {
		b.WriteString(FormatApplyReport(resp.Applied, label))
	}
	return b.String()
}

// FormatApplyReport renders persistence failures; a fully successful apply
// produces no output.
func FormatApplyReport(report *contract.ApplyReport, label ItemLabeler) string {
	if label == nil {
		label = TruncatedIDLabeler
	}
	if report.AllSucceeded() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", StyleRed.Render(fmt.Sprintf("%d item(s) failed to save:", len(report.Failed))))
	for _, f := range report.Failed {
		fmt.Fprintf(&b, "  %s %s: %s\n", StyleRed.Render("✗"), label(f.ItemID), f.Message)
	}
	return b.String()
}

// FormatScheduleTable renders the computed dates for a plan as a table,
// rows in the plan's display order.
func FormatScheduleTable(items []*domain.PlanItem, dates map[string]contract.ItemDates) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		d, ok := dates[it.ID]
		if !ok {
			d = contract.ItemDates{Start: it.StartDate, Finish: it.FinishDate}
		}
		rows = append(rows, []string{
			PinnedMarker(it.Pinned),
			it.Title,
			fmt.Sprintf("%dd", it.DurationDays),
			formatDate(d.Start),
			formatDate(d.Finish),
		})
	}
	return RenderTable([]string{"", "Item", "Dur", "Start", "Finish"}, rows)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("—")
	}
	return t.Format("2006-01-02")
}

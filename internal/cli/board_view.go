package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/telos/internal/cli/formatter"
	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// boardKeyMap defines the linking board's key bindings.
type boardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Chain      key.Binding
	FanIn      key.Binding
	FanOut     key.Binding
	Unlink     key.Binding
	Clear      key.Binding
	Reschedule key.Binding
	Quit       key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Chain:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chain")),
		FanIn:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "fan-in")),
		FanOut:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "fan-out")),
		Unlink:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unlink")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear deps")),
		Reschedule: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reschedule")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardLoadedMsg delivers fresh board data.
type boardLoadedMsg struct {
	items []*domain.PlanItem
	preds map[string][]domain.PredecessorEdge
	err   error
}

// boardOpDoneMsg delivers the outcome of a link or schedule operation.
type boardOpDoneMsg struct {
	summary string
	err     error
}

// boardModel is the interactive linking board: select items, then apply a
// bulk link operation to the selection.
type boardModel struct {
	app    *App
	planID string

	items    []*domain.PlanItem
	preds    map[string][]domain.PredecessorEdge
	cursor   int
	selected map[string]bool
	selOrder []string

	status  string
	loading bool
	keys    boardKeyMap
}

func newBoardModel(app *App, planID string) *boardModel {
	return &boardModel{
		app:      app,
		planID:   planID,
		selected: make(map[string]bool),
		loading:  true,
		keys:     defaultBoardKeys(),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		items, err := m.app.Items.ListByPlan(ctx, m.planID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		edges, err := m.app.Link.ListEdges(ctx, m.planID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		preds := make(map[string][]domain.PredecessorEdge)
		for _, e := range edges {
			preds[e.ItemID] = append(preds[e.ItemID], e)
		}
		return boardLoadedMsg{items: items, preds: preds}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.items
		m.preds = msg.preds
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case boardOpDoneMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.summary
		m.clearSelection()
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelection()
		case key.Matches(msg, m.keys.Chain):
			return m, m.linkCmd("chained", m.app.Link.ProposeChain)
		case key.Matches(msg, m.keys.FanIn):
			return m, m.linkCmd("fanned in", m.app.Link.ProposeFanIn)
		case key.Matches(msg, m.keys.FanOut):
			return m, m.linkCmd("fanned out", m.app.Link.ProposeFanOut)
		case key.Matches(msg, m.keys.Unlink):
			return m, m.linkCmd("unlinked", m.app.Link.ProposeUnlink)
		case key.Matches(msg, m.keys.Clear):
			return m, m.linkCmd("cleared", m.app.Link.ProposeClearAll)
		case key.Matches(msg, m.keys.Reschedule):
			return m, m.rescheduleCmd()
		}
	}
	return m, nil
}

func (m *boardModel) toggleSelection() {
	if len(m.items) == 0 {
		return
	}
	id := m.items[m.cursor].ID
	if m.selected[id] {
		delete(m.selected, id)
		for i, sel := range m.selOrder {
			if sel == id {
				m.selOrder = append(m.selOrder[:i], m.selOrder[i+1:]...)
				break
			}
		}
		return
	}
	m.selected[id] = true
	m.selOrder = append(m.selOrder, id)
}

func (m *boardModel) clearSelection() {
	m.selected = make(map[string]bool)
	m.selOrder = nil
}

func (m *boardModel) linkCmd(verb string, op func(ctx context.Context, req contract.LinkRequest) (*contract.LinkResponse, error)) tea.Cmd {
	selection := append([]string(nil), m.selOrder...)
	return func() tea.Msg {
		resp, err := op(context.Background(), contract.NewLinkRequest(m.planID, selection))
		if err != nil {
			return boardOpDoneMsg{err: err}
		}
		summary := fmt.Sprintf("%d edge(s) %s", len(resp.AcceptedEdges)+len(resp.RemovedEdges), verb)
		if len(resp.SkippedEdges) > 0 {
			summary += fmt.Sprintf(", %d duplicate(s) skipped", len(resp.SkippedEdges))
		}
		if resp.Applied != nil && !resp.Applied.AllSucceeded() {
			summary += fmt.Sprintf(", %d save failure(s)", len(resp.Applied.Failed))
		}
		return boardOpDoneMsg{summary: summary}
	}
}

func (m *boardModel) rescheduleCmd() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.app.Schedule.Recompute(context.Background(), contract.NewScheduleRequest(m.planID))
		if err != nil {
			return boardOpDoneMsg{err: err}
		}
		return boardOpDoneMsg{summary: fmt.Sprintf("%d item(s) rescheduled", len(resp.Dates))}
	}
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Linking Board"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(formatter.StyleDim.Render("Loading…") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString(formatter.StyleDim.Render("No items in this plan.") + "\n")
		return b.String()
	}

	for i, it := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		check := "[ ]"
		if m.selected[it.ID] {
			check = formatter.StyleGreen.Render("[x]")
		}

		dates := formatter.StyleDim.Render("unscheduled")
		if it.StartDate != nil && it.FinishDate != nil {
			dates = fmt.Sprintf("%s → %s", it.StartDate.Format("01-02"), it.FinishDate.Format("01-02"))
		}

		line := fmt.Sprintf("%s%s %s %-24s %3dd  %s",
			cursor, check, formatter.PinnedMarker(it.Pinned), it.Title, it.DurationDays, dates)
		if tags := m.predTags(it.ID); tags != "" {
			line += "  " + tags
		}
		b.WriteString(line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + formatter.StyleYellow.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.helpLine() + "\n")
	return b.String()
}

// predTags renders an item's inbound edges as short colored tags.
func (m *boardModel) predTags(itemID string) string {
	edges := m.preds[itemID]
	if len(edges) == 0 {
		return ""
	}
	titleByID := make(map[string]string, len(m.items))
	for _, it := range m.items {
		titleByID[it.ID] = it.Title
	}
	parts := make([]string, 0, len(edges))
	for _, e := range edges {
		title := titleByID[e.PredecessorID]
		if len(title) > 12 {
			title = title[:12] + "…"
		}
		parts = append(parts, fmt.Sprintf("%s %s", formatter.DepTypeLabel(e.Type, e.LagDays), formatter.StyleDim.Render(title)))
	}
	return strings.Join(parts, " ")
}

func (m *boardModel) helpLine() string {
	bindings := []key.Binding{
		m.keys.Toggle, m.keys.Chain, m.keys.FanIn, m.keys.FanOut,
		m.keys.Unlink, m.keys.Clear, m.keys.Reschedule, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s",
			formatter.StyleFg.Render(kb.Help().Key),
			formatter.StyleDim.Render(kb.Help().Desc)))
	}
	return strings.Join(parts, formatter.StyleDim.Render(" · "))
}

func newBoardCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Interactive linking board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("the board needs an interactive terminal")
			}
			planID, err := resolvePlanID(cmd.Context(), app, plan)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newBoardModel(app, planID), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paradigms/pkg/engine"
	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/render"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// =============================================================================
// ParadigmModel - Interactive pane viewer
// =============================================================================

// ParadigmModel is the bubbletea model for paging through a filled paradigm
// one pane at a time.
type ParadigmModel struct {
	Lemma     string
	WordClass wordclass.WordClass
	Size      wordclass.Size

	// Joined and Expanded are the same paradigm filled in both modes.
	Joined   []paradigm.Pane
	Expanded []paradigm.Pane

	Mode        paradigm.FillMode
	Frequencies bool
	Cursor      int
	Height      int
}

// NewParadigmModel creates a viewer starting at the first pane.
func NewParadigmModel(req engine.Request, joined, expanded []paradigm.Pane) ParadigmModel {
	return ParadigmModel{
		Lemma:     req.Lemma,
		WordClass: req.WordClass,
		Size:      req.Size,
		Joined:    joined,
		Expanded:  expanded,
		Mode:      req.Mode,
		Height:    24,
	}
}

func (m ParadigmModel) panes() []paradigm.Pane {
	if m.Mode == paradigm.ExpandForms {
		return m.Expanded
	}
	return m.Joined
}

func (m ParadigmModel) Init() tea.Cmd {
	return nil
}

func (m ParadigmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l", "down", "j":
			if m.Cursor < len(m.panes())-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			if n := len(m.panes()); n > 0 {
				m.Cursor = n - 1
			}
		case "e":
			if m.Mode == paradigm.ExpandForms {
				m.Mode = paradigm.JoinForms
			} else {
				m.Mode = paradigm.ExpandForms
			}
		case "f":
			m.Frequencies = !m.Frequencies
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height
	}
	return m, nil
}

func (m ParadigmModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s (%s, %s)", m.Lemma, m.WordClass, m.Size)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ pane  e expand/join  f frequencies  q quit"))
	b.WriteString("\n\n")

	panes := m.panes()
	if len(panes) == 0 {
		b.WriteString(StyleDim.Render("no inflections"))
		b.WriteString("\n")
		return b.String()
	}

	opts := []render.Option{render.WithBorder()}
	if m.Frequencies {
		opts = append(opts, render.WithFrequencies())
	}
	lines := strings.Split(strings.TrimRight(render.Text(panes[m.Cursor:m.Cursor+1], opts...), "\n"), "\n")
	if limit := m.Height - 6; limit > 0 && len(lines) > limit {
		lines = append(lines[:limit], StyleDim.Render("…"))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d] %s", m.Cursor+1, len(panes), m.Mode)))

	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	opts := fillOpts{size: "full", mode: paradigm.JoinForms.String()}

	cmd := &cobra.Command{
		Use:               "browse LEMMA WORDCLASS",
		Short:             "Page through a paradigm interactively",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeWordClass,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, _, err := parseFillRequest(args, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			rt, err := c.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Filling %s...", req.Lemma))
			spinner.Start()
			joinReq, expandReq := req, req
			joinReq.Mode, expandReq.Mode = paradigm.JoinForms, paradigm.ExpandForms
			joined, err := rt.engine.Fill(ctx, joinReq)
			if err != nil {
				spinner.StopWithError("Fill failed")
				return err
			}
			expanded, err := rt.engine.Fill(ctx, expandReq)
			if err != nil {
				spinner.StopWithError("Fill failed")
				return err
			}
			spinner.Stop()

			model := NewParadigmModel(req, joined.Panes, expanded.Panes)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", opts.size, "paradigm size: basic, full, linguistic")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "initial mode: join, expand")

	return cmd
}

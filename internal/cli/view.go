package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/render/tree"
	"github.com/branislavfamily/familysite/pkg/render/tree/sink"
	"github.com/branislavfamily/familysite/pkg/reveal"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

const (
	// panStep is how far one arrow key press moves the tree, in cells.
	panStep = 4

	// revealDuration is how long a card stays faint after it first scrolls
	// into view.
	revealDuration = 400 * time.Millisecond
)

var (
	styleRevealing = lipgloss.NewStyle().Faint(true)
	styleConnector = lipgloss.NewStyle().Foreground(colorDim)
	styleStatusBar = lipgloss.NewStyle().Foreground(colorGray)
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the family tree in the terminal",
		Long: `Explore the family tree in the terminal.

Drag with the left mouse button to pan and use the wheel to zoom.
Keys: +/- zoom, arrows pan, 0 resets the view, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			src, popts, closeSrc, err := c.treeSource(ctx)
			if err != nil {
				return err
			}
			defer closeSrc()

			root, err := runner.Load(ctx, src, popts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newViewModel(root),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// Model
// =============================================================================

// revealDoneMsg ends the entrance animation of the given cards.
type revealDoneMsg []string

// viewModel is the bubbletea model of the terminal viewer. Pointer and key
// events drive a viewport.Controller; the tree is re-measured in cells
// whenever the zoom changes.
type viewModel struct {
	view *tree.View
	ctrl *viewport.Controller

	tracker *reveal.Tracker
	fresh   map[string]bool // cards still animating in, by path

	layout      tree.Layout
	layoutScale float64

	width, height int
}

func newViewModel(root *family.Person) *viewModel {
	return &viewModel{
		view:    tree.Build(root),
		ctrl:    viewport.New(),
		tracker: &reveal.Tracker{},
		fresh:   make(map[string]bool),
	}
}

// Init implements tea.Model.
func (m *viewModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "+", "=":
			m.ctrl.ZoomIn()
		case "-", "_":
			m.ctrl.ZoomOut()
		case "0", "r":
			m.ctrl.Reset()
		case "left", "h":
			m.ctrl.PanBy(viewport.Point{X: -panStep})
		case "right", "l":
			m.ctrl.PanBy(viewport.Point{X: panStep})
		case "up", "k":
			m.ctrl.PanBy(viewport.Point{Y: -panStep / 2})
		case "down", "j":
			m.ctrl.PanBy(viewport.Point{Y: panStep / 2})
		default:
			return m, nil
		}

	case tea.MouseMsg:
		p := viewport.Point{X: float64(msg.X), Y: float64(msg.Y)}
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.ctrl.ZoomIn()
		case msg.Button == tea.MouseButtonWheelDown:
			m.ctrl.ZoomOut()
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.ctrl.PointerDown(viewport.ButtonPrimary, p)
		case msg.Action == tea.MouseActionMotion:
			m.ctrl.PointerMove(p)
		case msg.Action == tea.MouseActionRelease:
			m.ctrl.PointerUp()
		default:
			return m, nil
		}

	case revealDoneMsg:
		for _, k := range msg {
			delete(m.fresh, k)
		}
		return m, nil

	default:
		return m, nil
	}
	return m, m.reveal()
}

// View implements tea.Model.
func (m *viewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading family tree..."
	}
	l := m.currentLayout()
	canvas := sink.NewCanvas(l,
		sink.WithLineStyle(styleConnector),
		sink.WithCardStyle(func(b tree.Box) *lipgloss.Style {
			if m.fresh[b.Card.Path] {
				return &styleRevealing
			}
			return nil
		}),
	)
	x0, y0, w, h := m.window()
	lines := canvas.Lines(x0, y0, w, h)
	return strings.Join(lines, "\n") + "\n" + m.statusBar()
}

// currentLayout measures the tree at the controller's scale, reusing the
// previous layout when the scale has not changed.
func (m *viewModel) currentLayout() tree.Layout {
	if s := m.ctrl.Scale(); s != m.layoutScale {
		m.layout = tree.Measure(m.view, tree.TextMetrics.Scaled(s))
		m.layoutScale = s
	}
	return m.layout
}

// window returns the visible canvas rectangle. With no pan the drawing is
// centered; the last terminal row holds the status bar.
func (m *viewModel) window() (x0, y0, w, h int) {
	l := m.currentLayout()
	w, h = m.width, max(m.height-1, 1)
	off := m.ctrl.Offset()
	x0 = (int(math.Round(l.Width))-w)/2 - int(math.Round(off.X))
	y0 = (int(math.Round(l.Height))-h)/2 - int(math.Round(off.Y))
	return x0, y0, w, h
}

// visibleCards returns the paths of cards that overlap the window.
func (m *viewModel) visibleCards() []string {
	x0, y0, w, h := m.window()
	fx0, fy0 := float64(x0), float64(y0)
	fx1, fy1 := fx0+float64(w), fy0+float64(h)

	var out []string
	for _, b := range m.currentLayout().Boxes {
		if b.X < fx1 && b.X+b.W > fx0 && b.Y < fy1 && b.Y+b.H > fy0 {
			out = append(out, b.Card.Path)
		}
	}
	return out
}

// reveal marks newly visible cards as animating and schedules the end of
// their animation.
func (m *viewModel) reveal() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	keys := m.tracker.SeenAll(m.visibleCards())
	if len(keys) == 0 {
		return nil
	}
	for _, k := range keys {
		m.fresh[k] = true
	}
	return tea.Tick(revealDuration, func(time.Time) tea.Msg { return revealDoneMsg(keys) })
}

func (m *viewModel) statusBar() string {
	zoom := func(label string, enabled bool) string {
		if enabled {
			return StyleHighlight.Render(label)
		}
		return StyleDim.Render(label)
	}
	parts := []string{
		zoom("[-]", m.ctrl.CanZoomOut()),
		StyleValue.Render(fmt.Sprintf("%d%%", int(math.Round(m.ctrl.Scale()*100)))),
		zoom("[+]", m.ctrl.CanZoomIn()),
		styleStatusBar.Render("drag or arrows to pan · 0 reset · q quit"),
	}
	return strings.Join(parts, " ")
}

package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/animate"
	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

var (
	liveNodeStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	liveSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	liveEdgeStyle     = lipgloss.NewStyle().Foreground(colorDim)
	liveOnStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	liveOffStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// frameMsg asks the model to advance one frame.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/animate.FPS, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// liveToggle is a key that flips one setting.
type liveToggle struct {
	key   string
	label string
	get   func(settings.Settings) bool
	set   func(*settings.Settings, bool)
}

var liveToggles = []liveToggle{
	{"t", "tree", func(s settings.Settings) bool { return s.TreeMode }, func(s *settings.Settings, v bool) { s.TreeMode = v }},
	{"g", "grid", func(s settings.Settings) bool { return s.GridMode }, func(s *settings.Settings, v bool) { s.GridMode = v }},
	{"b", "bipartite", func(s settings.Settings) bool { return s.BipartiteMode }, func(s *settings.Settings, v bool) { s.BipartiteMode = v }},
	{"c", "components", func(s settings.Settings) bool { return s.ShowComponents }, func(s *settings.Settings, v bool) { s.ShowComponents = v }},
	{"l", "lock", func(s settings.Settings) bool { return s.LockMode }, func(s *settings.Settings, v bool) { s.LockMode = v }},
	{"f", "fixed", func(s settings.Settings) bool { return s.FixedMode }, func(s *settings.Settings, v bool) { s.FixedMode = v }},
	{"x", "collisions", func(s settings.Settings) bool { return s.CollisionAvoidance }, func(s *settings.Settings, v bool) { s.CollisionAvoidance = v }},
}

// liveModel plots the engine in the terminal. The bubbletea goroutine is the
// only one that touches the engine: key presses are queued on the loop and
// applied at the next frame.
type liveModel struct {
	engine *layout.Engine
	loop   *animate.Loop
	paused bool

	cols, rows int // plot area in cells
}

func newLiveModel(e *layout.Engine) liveModel {
	return liveModel{
		engine: e,
		loop:   animate.New(e, animate.NewManualSource()),
		cols:   80,
		rows:   20,
	}
}

func (m liveModel) Init() tea.Cmd {
	return nextFrame()
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if !m.paused {
			m.loop.Step(time.Time(msg))
		}
		return m, nextFrame()

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 10)
		m.rows = max(msg.Height-3, 5)

	case tea.MouseMsg:
		m.pointer(msg)

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "d":
			m.loop.Enqueue(func(e *layout.Engine) { e.SetDirected(!e.Settings().Directed) })
		case "s":
			// Single step while paused.
			m.loop.Step(time.Now())
		default:
			for _, tg := range liveToggles {
				if tg.key == key {
					m.loop.Enqueue(toggle(tg))
				}
			}
		}
	}
	return m, nil
}

func toggle(tg liveToggle) animate.Mutation {
	return func(e *layout.Engine) {
		s := e.Settings()
		tg.set(&s, !tg.get(s))
		e.UpdateSettings(s)
	}
}

// pointer forwards mouse input as canvas pointer events.
func (m liveModel) pointer(msg tea.MouseMsg) {
	p := m.toCanvas(msg.X, msg.Y)
	at := time.Now()
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.loop.Enqueue(func(e *layout.Engine) { e.PointerDown(p, at) })
	case msg.Action == tea.MouseActionMotion:
		m.loop.Enqueue(func(e *layout.Engine) { e.PointerMove(p) })
	case msg.Action == tea.MouseActionRelease:
		m.loop.Enqueue(func(e *layout.Engine) { e.PointerUp(p, at) })
	}
}

func (m liveModel) toCanvas(x, y int) r2.Vec {
	w, h := m.engine.Size()
	return r2.Vec{
		X: (float64(x) + 0.5) * w / float64(m.cols),
		Y: (float64(y-1) + 0.5) * h / float64(m.rows),
	}
}

func (m liveModel) toCell(p r2.Vec) (int, int) {
	w, h := m.engine.Size()
	return int(math.Floor(p.X / w * float64(m.cols))), int(math.Floor(p.Y / h * float64(m.rows)))
}

func (m liveModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("graphdraw live"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  frame %d", m.loop.Frames())))
	if m.paused {
		b.WriteString(StyleWarning.Render("  paused"))
	}
	b.WriteString("\n")
	b.WriteString(m.plot())
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

// plot draws edges as dots and nodes as their first letter.
func (m liveModel) plot() string {
	grid := make([][]string, m.rows)
	for y := range grid {
		grid[y] = make([]string, m.cols)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	set := func(x, y int, s string) {
		if y >= 0 && y < m.rows && x >= 0 && x < m.cols {
			grid[y][x] = s
		}
	}

	scene := m.engine.Scene()
	dot := liveEdgeStyle.Render("·")
	for _, e := range scene.Edges {
		x0, y0 := m.toCell(e.Curve.Start)
		x1, y1 := m.toCell(e.Curve.End)
		line(x0, y0, x1, y1, func(x, y int) { set(x, y, dot) })
	}
	for _, n := range scene.Nodes {
		x, y := m.toCell(n.Pos)
		glyph := "o"
		if n.Text != "" {
			glyph = string([]rune(n.Text)[0])
		}
		style := liveNodeStyle
		if s, ok := m.engine.Node(n.ID); ok && s.Selected {
			style = liveSelectedStyle
		}
		set(x, y, style.Render(glyph))
	}

	rows := make([]string, m.rows)
	for y := range grid {
		rows[y] = strings.Join(grid[y], "")
	}
	return strings.Join(rows, "\n")
}

func (m liveModel) status() string {
	s := m.engine.Settings()
	parts := make([]string, 0, len(liveToggles)+3)
	for _, tg := range liveToggles {
		style := liveOffStyle
		if tg.get(s) {
			style = liveOnStyle
		}
		parts = append(parts, style.Render(tg.key+" "+tg.label))
	}
	dir := liveOffStyle
	if s.Directed {
		dir = liveOnStyle
	}
	parts = append(parts, dir.Render("d directed"), StyleDim.Render("space pause"), StyleDim.Render("q quit"))
	return strings.Join(parts, StyleDim.Render(" · "))
}

// line visits the cells of a Bresenham line from (x0, y0) to (x1, y1).
func line(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// liveCommand creates the live command.
func (c *CLI) liveCommand() *cobra.Command {
	var seed uint64 = defaultSeed

	cmd := &cobra.Command{
		Use:   "live [graph.json]",
		Short: "Animate a graph in the terminal",
		Long: `Live runs the force simulation at 90 frames per second and plots it in the
terminal. Drag nodes with the mouse; keys toggle the layout modes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.loadSettings()
			if err != nil {
				return err
			}
			j, err := loadJob(args[0], base)
			if err != nil {
				return err
			}
			j.seed = seed

			// Logging would tear the alternate screen.
			c.SetLogLevel(LogQuiet)
			p := tea.NewProgram(newLiveModel(j.engine(c.Logger)),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", seed, "random seed for initial placement")
	return cmd
}

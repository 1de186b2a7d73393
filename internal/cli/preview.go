package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/records"
	"github.com/matzehuels/cardspace/pkg/scene"
	"github.com/matzehuels/cardspace/pkg/transition"
)

// Preview styles
var (
	previewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	previewActive     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewInactive   = lipgloss.NewStyle().Foreground(colorGray)
)

// layoutKeys maps letter shortcuts to layouts; digits 1..5 follow
// [layout.Kinds] order.
var layoutKeys = map[string]layout.Kind{
	"t": layout.Table,
	"s": layout.Sphere,
	"h": layout.Helix,
	"g": layout.Grid,
	"d": layout.Tetrahedron,
}

// previewCommand creates the preview command that animates cards in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		noCache bool
		src     sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Animate the cards in the terminal",
		Long: `Animate the cards in the terminal.

Keys:
  1-5          select layout by position
  t s h g d    table, sphere, helix, grid, tetrahedron
  r            reload records
  q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src.apply(c)
			return c.runPreview(cmd.Context(), noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addSourceFlags(cmd, &src)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, noCache bool) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	provider, closeProvider, err := c.newProvider(ctx, store)
	if err != nil {
		return fmt.Errorf("open %s source: %w", c.cfg.Source.Kind, err)
	}
	defer closeProvider()

	// The preview draws the whole screen itself; keep log lines out of it.
	c.SetLogLevel(LogError)

	stats := &frameStats{}
	sc := c.newScene(records.Static{}, transition.WithRender(stats.render))
	m := newPreviewModel(ctx, sc, provider, c.cfg.FrameInterval(), stats)

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// previewModel - terminal animation
// =============================================================================

type (
	frameMsg   time.Time
	recordsMsg struct {
		set *records.Set
		err error
	}
)

// frameStats counts render callbacks of the transition controller.
type frameStats struct {
	frames int
}

func (s *frameStats) render() error {
	s.frames++
	return nil
}

// previewModel owns the scene. bubbletea calls Update on one goroutine, so
// the scene is only touched from there; record fetches run as commands and
// hand their result back as a recordsMsg.
type previewModel struct {
	ctx      context.Context
	scene    *scene.Scene
	provider records.Provider
	interval time.Duration
	stats    *frameStats

	width, height int
	loading       bool
	status        string
	err           error
}

func newPreviewModel(ctx context.Context, sc *scene.Scene, p records.Provider, interval time.Duration, stats *frameStats) previewModel {
	return previewModel{
		ctx:      ctx,
		scene:    sc,
		provider: p,
		interval: interval,
		stats:    stats,
		width:    80,
		height:   24,
		loading:  true,
	}
}

func (m previewModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m previewModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m previewModel) fetch() tea.Cmd {
	return func() tea.Msg {
		set, err := m.provider.Records(m.ctx)
		return recordsMsg{set: set, err: err}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.scene.Step(time.Time(msg))
		return m, m.tick()

	case recordsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = m.scene.LoadSet(m.ctx, msg.set)
		m.status = fmt.Sprintf("%d records", msg.set.Len())
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.fetch()
			}
			return m, nil
		}
		if kind, ok := keyLayout(key); ok {
			m.err = m.scene.ChangeLayout(kind.String())
		}
	}
	return m, nil
}

// keyLayout resolves a layout shortcut.
func keyLayout(key string) (layout.Kind, bool) {
	if kind, ok := layoutKeys[key]; ok {
		return kind, true
	}
	kinds := layout.Kinds()
	if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(kinds) {
		return kinds[key[0]-'1'], true
	}
	return "", false
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	for i, kind := range layout.Kinds() {
		label := fmt.Sprintf("%d %s", i+1, kind)
		if kind == m.scene.Active() {
			b.WriteString(previewActive.Render(label))
		} else {
			b.WriteString(previewInactive.Render(label))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	w, h := max(m.width-2, 10), max(m.height-5, 5)
	b.WriteString(previewFrameStyle.Render(strings.Join(rasterize(m.scene.Snapshot(), w, h), "\n")))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render(m.err.Error()))
	case m.loading:
		b.WriteString(StyleDim.Render("loading records..."))
	default:
		state := "idle"
		if m.scene.Animating() {
			state = "animating"
		}
		b.WriteString(StyleDim.Render(m.status + " · "))
		b.WriteString(StyleHighlight.Render(state))
		b.WriteString(StyleDim.Render(" · frames "))
		b.WriteString(StyleNumber.Render(fmt.Sprint(m.stats.frames)))
		b.WriteString(StyleDim.Render(" · r reload · q quit"))
	}
	return b.String()
}

// =============================================================================
// Rasterizer
// =============================================================================

const (
	cameraZ    = 3000.0 // camera distance in front of the origin
	viewExtent = 1800.0 // half-width of the world visible at z=0
)

// rasterize draws each card as one glyph with a perspective camera on the
// +Z axis. Nearer cards hide farther ones; glyphs get heavier with
// nearness. Terminal cells are about twice as tall as wide.
func rasterize(states []scene.CardState, w, h int) []string {
	grid := make([][]rune, h)
	depth := make([][]float64, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
		depth[y] = make([]float64, w)
		for x := range depth[y] {
			depth[y][x] = -cameraZ
		}
	}

	scale := float64(w) / 2 / viewExtent
	for _, s := range states {
		p := s.Position
		dz := cameraZ - p[2]
		if dz <= 100 {
			continue
		}
		f := cameraZ / dz
		sx := int(float64(w)/2 + p[0]*scale*f)
		sy := int(float64(h)/2 - p[1]*scale*f/2)
		if sx < 0 || sx >= w || sy < 0 || sy >= h || p[2] <= depth[sy][sx] {
			continue
		}
		depth[sy][sx] = p[2]
		grid[sy][sx] = glyph(p[2])
	}

	lines := make([]string, h)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}

func glyph(z float64) rune {
	switch {
	case z > 300:
		return '●'
	case z > -300:
		return '•'
	default:
		return '·'
	}
}

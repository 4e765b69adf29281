package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/go-theft-auto/segment"
)

const (
	frameInterval = 16 * time.Millisecond
	maxFrameStep  = 100 * time.Millisecond

	// cellPixels is how many pixels of tuning one terminal column stands for.
	cellPixels = 8

	tabRowY    = 2
	rowHeight  = 2
	statusY    = tabRowY + rowHeight + 1
	minHeight  = 10
	indicatorC = "━"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	indicatorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dragStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	statusStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

type tickMsg time.Time

type reloadMsg struct {
	profiles segment.Profiles
	err      error
}

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Cancel, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right}, {k.Cancel, k.Help, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous tab")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type model struct {
	logger  *zap.Logger
	surface *segment.Surface

	bar  *segment.Selector
	tabs *segment.Selector

	destinations []string
	tabNames     []string

	width, height int

	clock    func() time.Duration
	lastTick time.Time

	keys   keyMap
	help   help.Model
	status string
}

func newModel(profiles segment.Profiles, logger *zap.Logger) *model {
	start := time.Now()
	m := &model{
		logger:       logger,
		surface:      segment.NewSurface(nil),
		destinations: []string{"home", "courses", "calendar", "inbox", "profile"},
		tabNames:     []string{"overview", "quizzes", "assignments"},
		clock:        func() time.Duration { return time.Since(start) },
		keys:         defaultKeyMap(),
		help:         help.New(),
		status:       "click or drag across a row",
	}

	tabLayout := segment.RowLayout{Bounds: func() segment.Rect {
		return segment.Rect{X: 0, Y: tabRowY, W: float32(m.width), H: rowHeight}
	}}
	barLayout := segment.RowLayout{Bounds: func() segment.Rect {
		if m.height < minHeight {
			return segment.Rect{}
		}
		return segment.Rect{X: 0, Y: float32(m.height - rowHeight - 2), W: float32(m.width), H: rowHeight}
	}}

	m.tabs = segment.NewTabGroup(tabLayout, &m.tabNames, func(i int) error {
		m.status = fmt.Sprintf("tab: %s", m.tabNames[i])
		m.tabs.SetActiveIndex(i)
		return nil
	}, segment.WithConfig(cellConfig(profiles.TabGroup)), segment.WithLogger(logger))

	m.bar = segment.NewBottomBar(barLayout, &m.destinations, func(i int) error {
		m.status = fmt.Sprintf("navigate: %s", m.destinations[i])
		m.bar.SetActiveIndex(i)
		return nil
	}, segment.WithConfig(cellConfig(profiles.BottomBar)), segment.WithLogger(logger))

	m.surface.Add(m.tabs)
	m.surface.Add(m.bar)
	return m
}

// cellConfig rescales pixel tuning to terminal columns.
func cellConfig(cfg segment.Config) segment.Config {
	cfg.DragThreshold = max(cfg.DragThreshold/cellPixels, 1)
	cfg.Motion.EdgeMargin /= cellPixels
	cfg.Motion.SnapVelocity /= cellPixels
	cfg.Motion.FlickVelocity /= cellPixels
	cfg.Motion.StretchPerVelocity *= cellPixels
	cfg.Motion.CornerRadius = 0
	cfg.Motion.DragRadius = 0
	return cfg
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		dt := frameInterval
		if !m.lastTick.IsZero() {
			dt = min(time.Time(msg).Sub(m.lastTick), maxFrameStep)
		}
		m.lastTick = time.Time(msg)
		m.surface.Step(dt)
		return m, tick()

	case tea.MouseMsg:
		if ev, ok := pointerEvent(msg, m.clock()); ok {
			m.surface.Dispatch(ev)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Cancel):
			m.surface.Dispatch(segment.Cancel(m.clock()))
		case key.Matches(msg, m.keys.Left):
			if i := m.tabs.ActiveIndex(); i > 0 {
				m.tabs.SetActiveIndex(i - 1)
			}
		case key.Matches(msg, m.keys.Right):
			if i := m.tabs.ActiveIndex(); i < len(m.tabNames)-1 {
				m.tabs.SetActiveIndex(i + 1)
			}
		}

	case reloadMsg:
		if msg.err != nil {
			m.logger.Warn("config reload failed", zap.Error(msg.err))
			m.status = fmt.Sprintf("config: %v", msg.err)
			return m, nil
		}
		m.tabs.SetConfig(cellConfig(msg.profiles.TabGroup))
		m.bar.SetConfig(cellConfig(msg.profiles.BottomBar))
		m.status = "config reloaded"
	}
	return m, nil
}

// pointerEvent maps a terminal mouse report to the pointer stream. Cells
// are hit at their center. Only the left button starts a gesture.
func pointerEvent(msg tea.MouseMsg, at time.Duration) (segment.PointerEvent, bool) {
	ev := segment.PointerEvent{
		ID:   segment.MousePointer,
		Pos:  segment.Vec2{X: float32(msg.X) + 0.5, Y: float32(msg.Y) + 0.5},
		Time: at,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Kind = segment.PointerDown
	case tea.MouseActionMotion:
		ev.Kind = segment.PointerMove
	case tea.MouseActionRelease:
		ev.Kind = segment.PointerUp
	default:
		return ev, false
	}
	return ev, true
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.height < minHeight {
		return "terminal too small"
	}

	lines := make([]string, m.height)
	lines[0] = titleStyle.Render("segtui")
	lines[tabRowY] = m.labels(m.tabs)
	lines[tabRowY+1] = m.indicator(m.tabs)
	lines[statusY] = statusStyle.Render(m.status)

	barY := m.height - rowHeight - 2
	lines[barY] = m.labels(m.bar)
	lines[barY+1] = m.indicator(m.bar)
	lines[m.height-1] = m.help.View(m.keys)
	return strings.Join(lines, "\n")
}

func (m *model) labels(sel *segment.Selector) string {
	var b strings.Builder
	col := 0
	for _, opt := range sel.Registry().Options() {
		start, end := int(opt.Rect.X), int(opt.Rect.Right())
		w := end - start
		if w <= 0 {
			continue
		}
		if start > col {
			b.WriteString(strings.Repeat(" ", start-col))
		}
		label := opt.Value
		if len(label) > w {
			label = label[:w]
		}
		style := labelStyle
		if opt.Index == sel.ActiveIndex() {
			style = activeLabelStyle
		}
		b.WriteString(style.Width(w).Align(lipgloss.Center).Render(label))
		col = end
	}
	return b.String()
}

func (m *model) indicator(sel *segment.Selector) string {
	r, ok := sel.IndicatorRect()
	if !ok {
		return ""
	}
	start := max(int(r.X+0.5), 0)
	end := min(int(r.Right()+0.5), m.width)
	if end <= start {
		return ""
	}
	style := indicatorStyle
	if p := sel.Phase(); p == segment.PhasePointerDown || p == segment.PhaseDragging {
		style = dragStyle
	}
	return strings.Repeat(" ", start) + style.Render(strings.Repeat(indicatorC, end-start))
}

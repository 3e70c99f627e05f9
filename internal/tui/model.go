// Package tui is the interactive wheel: a Bubble Tea program drawing the
// disc next to the editable option list.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/spinwin/internal/generate"
	"github.com/Makepad-fr/spinwin/internal/logger"
	"github.com/Makepad-fr/spinwin/internal/model"
	"github.com/Makepad-fr/spinwin/internal/ui"
	"github.com/Makepad-fr/spinwin/internal/wheel"
)

const (
	frameInterval  = time.Second / 30
	sidebarWidth   = 34
	defaultTimeout = 20 * time.Second
	minRadius      = 4
	maxRadius      = 12
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeTheme
)

type (
	frameMsg struct {
		id int
		at time.Time
	}
	settleMsg    struct{ token wheel.Token }
	generatedMsg struct {
		request uint64
		labels  []string
		err     error
	}
)

// Options configures New.
type Options struct {
	Items      model.List
	Randomizer *wheel.Randomizer
	Duration   time.Duration
	// Generator may be nil; generation then reports a missing key.
	Generator generate.Generator
	Timeout   time.Duration
	Logger    *slog.Logger
	Theme     ui.Theme
	Now       func() time.Time
}

// Model implements tea.Model.
type Model struct {
	machine *wheel.Machine
	gen     generate.Generator
	timeout time.Duration
	log     *slog.Logger
	theme   ui.Theme
	now     func() time.Time

	list    list.Model
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	mode    mode

	anim      wheel.Animation
	animating bool
	frame     int
	display   float64

	topic  string
	cancel context.CancelFunc

	width, height int
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Theme.Name == "" {
		opts.Theme = ui.Current()
	}
	mopts := []wheel.Option{
		wheel.WithExplain(generate.Message),
		wheel.WithLogger(opts.Logger),
	}
	if opts.Randomizer != nil {
		mopts = append(mopts, wheel.WithRandomizer(opts.Randomizer))
	}
	if opts.Duration > 0 {
		mopts = append(mopts, wheel.WithDuration(opts.Duration))
	}

	l := list.New(nil, itemDelegate{theme: opts.Theme}, sidebarWidth, 10)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = opts.Theme.Title
	l.Styles.PaginationStyle = opts.Theme.Muted
	l.SetStatusBarItemName("item", "items")
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Theme.Accent

	m := Model{
		machine: wheel.NewMachine(opts.Items, mopts...),
		gen:     opts.Generator,
		timeout: opts.Timeout,
		log:     opts.Logger,
		theme:   opts.Theme,
		now:     opts.Now,
		list:    l,
		input:   ti,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeys(),
		width:   80,
		height:  24,
	}
	m.syncList()
	return m
}

// State returns the wheel state.
func (m Model) State() wheel.State { return m.machine.State() }

// Rotation is the angle currently drawn, which trails the state's target
// rotation while the wheel animates.
func (m Model) Rotation() float64 { return m.display }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = sidebarWidth
		m.list.SetSize(sidebarWidth, m.listHeight())
		return m, nil

	case frameMsg:
		if !m.animating || msg.id != m.frame {
			return m, nil
		}
		rot, done := m.anim.At(msg.at)
		m.display = rot
		if done {
			m.animating = false
			return m, nil
		}
		return m, nextFrame(m.frame)

	case settleMsg:
		cmd := m.dispatch(wheel.SpinSettled{Token: msg.token})
		if st := m.machine.State(); st.Status == wheel.ResultShown {
			m.animating = false
			m.display = st.Rotation
		}
		return m, cmd

	case generatedMsg:
		if msg.request == m.machine.State().Request {
			m.cancel = nil
		}
		return m, m.dispatch(wheel.GenerationFinished{Request: msg.request, Labels: msg.labels, Err: msg.err})

	case spinner.TickMsg:
		if m.machine.State().Status != wheel.Generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	if m.mode != modeBrowse {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.machine.State()
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Spin):
		return m, m.dispatch(wheel.SpinRequested{})

	case key.Matches(msg, m.keys.Back):
		switch st.Status {
		case wheel.Generating:
			if m.cancel != nil {
				m.cancel()
				m.cancel = nil
			}
			return m, m.dispatch(wheel.GenerationAbandoned{})
		case wheel.ResultShown:
			return m, m.dispatch(wheel.ResultDismissed{})
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "New option..."
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Generate):
		m.mode = modeTheme
		m.input.SetValue("")
		m.input.Placeholder = "Theme, e.g. weekend plans"
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Remove):
		i := m.list.Index()
		if i < 0 || i >= st.Items.Len() {
			return m, nil
		}
		return m, m.dispatch(wheel.ItemRemoved{ID: st.Items.At(i).ID})

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.list.SetSize(sidebarWidth, m.listHeight())
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.leaveInput()
		return m, nil
	case tea.KeyCtrlC:
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case tea.KeyEnter:
		value := m.input.Value()
		if m.mode == modeAdd {
			cmd := m.dispatch(wheel.ItemAdded{Label: value})
			if m.machine.State().Notice.Kind == wheel.NoticeValidation {
				return m, cmd
			}
			m.leaveInput()
			m.list.Select(m.machine.State().Items.Len() - 1)
			return m, cmd
		}
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.topic = strings.TrimSpace(value)
		m.leaveInput()
		return m, m.dispatch(wheel.GenerationRequested{Theme: value})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.input.SetValue("")
	m.input.Blur()
}

// dispatch feeds ev to the machine and turns its effects into commands.
func (m *Model) dispatch(ev wheel.Event) tea.Cmd {
	before := m.machine.State()
	effects := m.machine.Dispatch(ev)
	after := m.machine.State()

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case wheel.ScheduleSettle:
			cmds = append(cmds, m.startAnimation(before.Rotation, after.Rotation, eff.After))
			cmds = append(cmds, settleAfter(eff.Token, eff.After))
			logger.FromContext(logger.WithSpin(context.Background(), uint64(eff.Token)), m.log).
				Debug("spin scheduled", "after", eff.After, "target", after.Rotation)
		case wheel.CancelSettle:
			m.animating = false
			m.display = after.Rotation
		case wheel.StartGeneration:
			cmds = append(cmds, m.startGeneration(eff), m.spinner.Tick)
		case wheel.Notify:
			m.log.Debug("notice", "kind", int(eff.Notice.Kind), "text", eff.Notice.Text)
		}
	}
	if !sameItems(before.Items, after.Items) || before.Winner != after.Winner {
		m.syncList()
	}
	return tea.Batch(cmds...)
}

func (m *Model) startAnimation(from, to float64, d time.Duration) tea.Cmd {
	m.frame++
	m.animating = true
	m.display = from
	m.anim = wheel.Animation{From: from, To: to, Start: m.now(), Duration: d, Curve: wheel.EaseOut}
	return nextFrame(m.frame)
}

func nextFrame(id int) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg{id: id, at: t} })
}

func settleAfter(token wheel.Token, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return settleMsg{token: token} })
}

func (m *Model) startGeneration(eff wheel.StartGeneration) tea.Cmd {
	gen := m.gen
	if gen == nil {
		return func() tea.Msg {
			return generatedMsg{request: eff.Request, err: generate.ErrMissingCredential}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel
	log := m.log
	return func() tea.Msg {
		defer cancel()
		labels, err := gen.Generate(ctx, eff.Theme)
		if err != nil {
			log.Warn("generation failed", "theme", eff.Theme, "error", err)
		}
		return generatedMsg{request: eff.Request, labels: labels, err: err}
	}
}

func sameItems(a, b model.List) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}

func (m *Model) syncList() {
	st := m.machine.State()
	items := st.Items.Items()
	li := make([]list.Item, 0, len(items))
	for i, it := range items {
		li = append(li, listItem{
			Item:   it,
			Number: i + 1,
			Winner: st.Winner != nil && st.Winner.Item.ID == it.ID,
		})
	}
	idx := m.list.Index()
	m.list.SetItems(li)
	if idx >= len(li) {
		idx = len(li) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = fmt.Sprintf("Wheel Items (%d)", len(items))
}

func (m Model) listHeight() int {
	h := m.height - 8
	if m.help.ShowAll {
		h -= 3
	}
	if m.mode != modeBrowse {
		h -= 4
	}
	return max(h, 4)
}

func (m Model) radius() int {
	byHeight := (m.height - 6) / 2
	byWidth := (m.width - sidebarWidth - 6) / 4
	return max(minRadius, min(maxRadius, byHeight, byWidth))
}

func (m Model) View() string {
	t := m.theme
	st := m.machine.State()

	m.list.SetSize(sidebarWidth, m.listHeight())
	left := []string{t.Title.Render("Spin & Win"), m.list.View()}
	if m.mode != modeBrowse {
		title := "Add option"
		if m.mode == modeTheme {
			title = "Generate from theme"
		}
		left = append(left, ui.PanelStyle().Width(sidebarWidth-2).Render(title+"\n"+m.input.View()))
	}
	left = append(left, m.help.View(m.keys))

	right := []string{
		Disc(st.Items.Items(), m.display, m.radius(), t),
		"",
		m.statusLine(st),
	}
	if n := m.noticeLine(st); n != "" {
		right = append(right, n)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		ui.PanelStyle().Render(lipgloss.JoinVertical(lipgloss.Left, left...)),
		"  ",
		lipgloss.JoinVertical(lipgloss.Center, right...),
	)
}

func (m Model) statusLine(st wheel.State) string {
	t := m.theme
	switch st.Status {
	case wheel.Spinning:
		return t.Pending.Render("SPINNING...") + "  " + ui.ProgressBar(int(m.anim.Progress(m.now())*100), 100, 20)
	case wheel.ResultShown:
		return winnerBanner(st.Winner, t)
	case wheel.Generating:
		return m.spinner.View() + " " + t.Accent.Render(fmt.Sprintf("Generating %q...", m.topic)) +
			"  " + t.Muted.Render("esc to cancel")
	}
	if !st.CanSpin() {
		return t.Muted.Render("SPIN (add at least 2 items)")
	}
	return t.Success.Render("[ SPIN ]") + " " + t.Muted.Render("press space")
}

func (m Model) noticeLine(st wheel.State) string {
	t := m.theme
	switch st.Notice.Kind {
	case wheel.NoticeInfo:
		return t.Success.Render(st.Notice.Text)
	case wheel.NoticeValidation:
		return t.Pending.Render(st.Notice.Text)
	case wheel.NoticeFailure:
		return t.Error.Render(st.Notice.Text)
	}
	return ""
}

func winnerBanner(w *wheel.Winner, t ui.Theme) string {
	if w == nil {
		return ""
	}
	style := lipgloss.NewStyle().Bold(true).Padding(0, 2).Border(t.Border)
	if !t.Mono {
		style = style.BorderForeground(lipgloss.Color(w.Item.Color)).Foreground(lipgloss.Color(w.Item.Color))
	}
	return style.Render(fmt.Sprintf("WINNER: %s", w.Item.Label))
}

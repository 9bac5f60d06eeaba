package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/nextup/pkg/app"
	"tableflip.dev/nextup/pkg/event"
	"tableflip.dev/nextup/pkg/store"
	"tableflip.dev/nextup/pkg/timeline"
	"tableflip.dev/nextup/pkg/timeutil"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	currentStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	streakStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sectionIndent = "  "
)

// Model is the interactive timeline. It fetches once on start and on demand;
// between fetches every tick only re-derives against the wall clock, so the
// view stays honest even when the network is gone.
type Model struct {
	svc  *app.Service
	ctx  context.Context
	tick time.Duration

	sess   app.Session
	snap   app.Snapshot
	streak int

	fetching bool
	spin     spinner.Model
	status   string

	// lastCompleted remembers the most recent x press so u can undo it.
	lastCompleted string

	changes <-chan store.Event

	termWidth int
}

// New creates the UI model backed by the Service. changes may be nil; when
// set, external store writes (another context completing an event) trigger a
// re-derivation.
func New(svc *app.Service, tick time.Duration, changes <-chan store.Event) Model {
	if tick <= 0 {
		tick = 30 * time.Second
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		svc:      svc,
		ctx:      context.Background(),
		tick:     tick,
		fetching: true,
		spin:     sp,
		changes:  changes,
		status:   "q quit, r refresh, x complete current, u undo",
	}
}

type sessionMsg struct {
	sess   app.Session
	streak int
}
type errMsg struct{ err error }
type tickMsg time.Time
type storeChangedMsg struct{}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch(), m.schedule(), m.awaitChange())
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		sess, err := m.svc.FetchDay(m.ctx, now)
		if err != nil {
			return errMsg{err}
		}
		count, err := m.svc.UpdateStreak(now)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{sess: sess, streak: count}
	}
}

func (m Model) schedule() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) awaitChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m *Model) rederive(now time.Time) {
	snap, err := m.svc.Snapshot(m.ctx, m.sess, now)
	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.snap = snap
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width

	case errMsg:
		m.fetching = false
		m.status = "ERR: " + msg.err.Error()

	case sessionMsg:
		m.fetching = false
		m.sess = msg.sess
		m.streak = msg.streak
		m.rederive(time.Now())

	case tickMsg:
		m.rederive(time.Time(msg))
		cmds = append(cmds, m.schedule())

	case storeChangedMsg:
		m.rederive(time.Now())
		cmds = append(cmds, m.awaitChange())

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.fetching = true
			m.status = "refreshing"
			cmds = append(cmds, m.fetch(), m.spin.Tick)
		case "x":
			if cur := m.snap.Classification.Current; cur != nil {
				if err := m.svc.MarkComplete(m.ctx, time.Now(), cur.ID); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.lastCompleted = cur.ID
					m.status = "completed " + cur.Title
					m.rederive(time.Now())
				}
			} else {
				m.status = "nothing in progress to complete"
			}
		case "u":
			if m.lastCompleted == "" {
				m.status = "nothing to undo"
				break
			}
			if err := m.svc.UndoComplete(m.ctx, time.Now(), m.lastCompleted); err != nil {
				m.status = "ERR: " + err.Error()
			} else {
				m.status = "restored " + m.lastCompleted
				m.lastCompleted = ""
				m.rederive(time.Now())
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var b strings.Builder

	now := m.snap.Now
	if now.IsZero() {
		now = time.Now()
	}

	header := "Next Up · " + now.Format("Monday, January 2")
	if m.fetching {
		header += "  " + m.spin.View()
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	c := m.snap.Classification

	b.WriteString(titleStyle.Render("Now") + "\n")
	if c.Current != nil {
		cur := *c.Current
		pct := timeline.Progress(cur, now)
		b.WriteString(sectionIndent + currentStyle.Render(line(cur)) + "\n")
		b.WriteString(fmt.Sprintf("%s%s %3.0f%%  %dm left\n",
			sectionIndent, bar(pct, 24), pct, timeline.MinutesLeft(cur, now)))
	} else {
		b.WriteString(sectionIndent + faintStyle.Render("nothing in progress") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Next") + "\n")
	if c.Next != nil {
		b.WriteString(fmt.Sprintf("%s%s%s\n", sectionIndent, line(*c.Next),
			faintStyle.Render(fmt.Sprintf("  in %dm", timeline.MinutesUntil(c.Next.Start, now)))))
	} else {
		b.WriteString(sectionIndent + faintStyle.Render("nothing else today") + "\n")
	}
	b.WriteString("\n")

	if len(c.Upcoming) > 0 {
		b.WriteString(titleStyle.Render("Upcoming") + "\n")
		for _, e := range c.Upcoming {
			b.WriteString(sectionIndent + line(e) + "\n")
		}
		b.WriteString("\n")
	}

	if len(c.Past) > 0 {
		b.WriteString(titleStyle.Render("Done") + "\n")
		for _, e := range c.Past {
			b.WriteString(sectionIndent + doneStyle.Render(line(e)) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(faintStyle.Render(fmt.Sprintf("day %s %3.0f%%", bar(m.snap.DayProgress, 24), m.snap.DayProgress)) + "\n")
	if m.streak > 0 {
		b.WriteString(streakStyle.Render(fmt.Sprintf("%d day streak", m.streak)) + "\n")
	}
	b.WriteString("\n" + statusStyle.Render(m.status))

	return b.String()
}

func line(e event.Event) string {
	return fmt.Sprintf("%s–%s  %s",
		timeutil.FormatClock(e.Start),
		timeutil.FormatClock(e.End),
		e.Title)
}

func bar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// Run starts the interactive timeline in the alternate screen.
func Run(svc *app.Service, tick time.Duration, changes <-chan store.Event) error {
	p := tea.NewProgram(New(svc, tick, changes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

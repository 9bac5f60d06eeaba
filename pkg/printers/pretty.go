// Package printers renders the classified timeline for one-shot CLI output.
package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/nextup/pkg/event"
	"tableflip.dev/nextup/pkg/timeline"
)

type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("5d41402abc4b2a76  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Timeline prints the full classification: the current event with its
// progress, the next event with its countdown, then upcoming and done
// sections.
func (pp *PrettyPrint) Timeline(c timeline.Classification, now time.Time) {
	pp.Title("Now")
	if c.Current != nil {
		pp.current(*c.Current, now)
	} else {
		pp.none("nothing in progress")
	}

	pp.Title("Next")
	if c.Next != nil {
		pp.next(*c.Next, now)
	} else {
		pp.none("nothing else today")
	}

	if len(c.Upcoming) > 0 {
		pp.Title("Upcoming")
		for _, e := range c.Upcoming {
			pp.line(e, color.New())
		}
		fmt.Println("")
	}

	if len(c.Past) > 0 {
		pp.Title("Done")
		for _, e := range c.Past {
			pp.line(e, color.New(color.CrossedOut, color.Faint))
		}
		fmt.Println("")
	}
}

// DayProgress prints the waking-day progress line.
func (pp *PrettyPrint) DayProgress(pct float64) {
	f := color.New(color.Faint)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Printf("day %s %3.0f%%\n", bar(pct, 20), pct)
}

// Streak prints the day-streak counter.
func (pp *PrettyPrint) Streak(count int) {
	s := color.New(color.FgHiYellow, color.Bold)
	if pp.ShowID {
		_, _ = s.Print(spacing)
	}
	switch count {
	case 1:
		_, _ = s.Printf("1 day streak\n")
	default:
		_, _ = s.Printf("%d day streak\n", count)
	}
}

func (pp *PrettyPrint) current(e event.Event, now time.Time) {
	t := color.New(color.Bold)
	pct := timeline.Progress(e, now)
	left := timeline.MinutesLeft(e, now)

	pp.id(e)
	_, _ = t.Printf("%s  %s\n", window(e), e.Title)
	if pp.ShowID {
		fmt.Print(spacing)
	}
	fmt.Printf("%s %3.0f%%  %dm left\n\n", bar(pct, 20), pct, left)
}

func (pp *PrettyPrint) next(e event.Event, now time.Time) {
	t := color.New()
	c := color.New(color.Faint)

	pp.id(e)
	_, _ = t.Printf("%s  %s", window(e), e.Title)
	_, _ = c.Printf("  in %dm\n\n", timeline.MinutesUntil(e.Start, now))
}

func (pp *PrettyPrint) line(e event.Event, t *color.Color) {
	pp.id(e)
	_, _ = t.Printf("%s  %s\n", window(e), e.Title)
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Printf(" %s\n\n", msg)
}

func (pp *PrettyPrint) id(e event.Event) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	id := e.ID
	if len(id) > len(spacing)-2 {
		id = id[:len(spacing)-2]
	}
	_, _ = y.Print(id)
	_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
}

func window(e event.Event) string {
	return fmt.Sprintf("%s–%s", e.Start.Local().Format("15:04"), e.End.Local().Format("15:04"))
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

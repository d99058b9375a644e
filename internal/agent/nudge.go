package agent

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BuildNudge composes the morning reminder. It returns ok=false when
// today's entry is already written and no reminder is needed.
func (a *Agent) BuildNudge() (msg string, ok bool, err error) {
	today := a.today()
	exists, err := a.db.EntryExists(today)
	if err != nil {
		return "", false, fmt.Errorf("building nudge: %w", err)
	}
	if exists {
		return "", false, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Good morning! It's %s and today's reflection is still unwritten.", FormatDate(today, "display"))

	dates, err := a.db.ListDates()
	if err != nil {
		a.log.Warn("listing dates for nudge", zap.Error(err))
	}
	if len(dates) > 0 {
		last, err := a.db.GetEntryByDate(dates[0])
		if err != nil {
			a.log.Warn("loading last entry for nudge", zap.Error(err))
		}
		if last != nil {
			fmt.Fprintf(&b, "\n\nLast time (%s) your intention was: %s", FormatDate(last.Date, "display"), last.Intention)
			if last.Strategy != "" {
				fmt.Fprintf(&b, "\nYour strategy started with: %s", firstLine(last.Strategy))
			}
		}
	}

	stats := computeStats(dates, a.now())
	if stats.EntriesLast7Days > 0 {
		fmt.Fprintf(&b, "\n\nYou've reflected %d of the last 7 days. Take five minutes for today's entry.", stats.EntriesLast7Days)
	} else {
		b.WriteString("\n\nTake five minutes to journal, set an intention, and pick three priorities.")
	}
	return b.String(), true, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

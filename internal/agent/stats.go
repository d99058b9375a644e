package agent

import (
	"math"
	"time"
)

type Stats struct {
	TotalEntries        int `json:"total_entries"`
	DaysSinceFirstEntry int `json:"days_since_first_entry"`
	EntriesLast7Days    int `json:"entries_last_7_days"`
}

// Stats summarizes the journal as of the agent's clock.
func (a *Agent) Stats() (Stats, error) {
	dates, err := a.db.ListDates()
	if err != nil {
		return Stats{}, err
	}
	return computeStats(dates, a.now()), nil
}

// computeStats counts distinct entry dates. "Last 7 days" is today plus the
// six days before it. Dates that fail to parse are ignored.
func computeStats(dates []string, now time.Time) Stats {
	s := Stats{TotalEntries: len(dates)}
	if len(dates) == 0 {
		return s
	}
	today := midnight(now)
	weekStart := today.AddDate(0, 0, -6)

	var first time.Time
	for _, d := range dates {
		t, err := time.ParseInLocation(dateLayout, d, now.Location())
		if err != nil {
			continue
		}
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if !t.Before(weekStart) && !t.After(today) {
			s.EntriesLast7Days++
		}
	}
	if !first.IsZero() {
		s.DaysSinceFirstEntry = int(math.Round(today.Sub(first).Hours() / 24))
	}
	return s
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

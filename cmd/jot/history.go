package main

import (
	"fmt"
	"io"
	"time"

	"github.com/chris/jot/internal/agent"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		dates, err := a.agent.Dates()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(dates) == 0 {
			fmt.Fprintln(out, "No entries yet. Run `jot reflect` to write your first one.")
			return nil
		}
		for _, d := range dates {
			fmt.Fprintf(out, "%s  %-20s %s\n", d, agent.FormatDate(d, "display"), age(d, time.Now()))
		}
		return nil
	},
}

// age renders how long ago date was, in whole days.
func age(date string, now time.Time) string {
	t, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return ""
	}
	if t.Format("2006-01-02") == now.Format("2006-01-02") {
		return "today"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

var showCmd = &cobra.Command{
	Use:   "show DATE",
	Short: "Show the entry for a date (YYYY-MM-DD or \"today\")",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		var v *agent.View
		if args[0] == "today" {
			v, err = a.agent.Today()
		} else {
			v, err = a.agent.Entry(args[0])
		}
		if err != nil {
			return err
		}
		printView(cmd.OutOrStdout(), v)
		return nil
	},
}

func printView(w io.Writer, v *agent.View) {
	e := v.Entry
	fmt.Fprintf(w, "%s\n\n", agent.FormatDate(e.Date, "display"))
	fmt.Fprintf(w, "Journal:\n%s\n\n", e.Journal)
	fmt.Fprintf(w, "Intention: %s\n", e.Intention)
	if e.Dream != "" {
		fmt.Fprintf(w, "Dream: %s\n", e.Dream)
	}
	fmt.Fprintf(w, "Priorities:\n%s\n\n", e.Priorities)

	if v.Parsed {
		printResult(w, v.Sections)
		return
	}
	if e.Reflection != "" {
		fmt.Fprintf(w, "Reflection:\n%s\n\n", e.Reflection)
	}
	if e.Strategy != "" {
		fmt.Fprintf(w, "Strategy:\n%s\n", e.Strategy)
	}
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journaling stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.agent.Stats()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total entries:          %s\n", humanize.Comma(int64(s.TotalEntries)))
		fmt.Fprintf(out, "Days since first entry: %s\n", humanize.Comma(int64(s.DaysSinceFirstEntry)))
		fmt.Fprintf(out, "Entries, last 7 days:   %d\n", s.EntriesLast7Days)
		fmt.Fprintf(out, "AI status:              %s (%s, %s)\n", a.apiStatus(), a.llm.Provider(), a.llm.Model())
		return nil
	},
}

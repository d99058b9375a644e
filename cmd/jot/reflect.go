package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chris/jot/internal/agent"
	"github.com/chris/jot/internal/reflection"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	reflectForm      agent.Form
	reflectOverwrite bool
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Write today's entry and get a reflection",
	Long: `Write a morning entry and get a reflection back.

Missing fields are prompted for when running in a terminal. Piped or
scripted use must pass --journal, --intention and --priorities.`,
	Args: cobra.NoArgs,
	RunE: runReflect,
}

func init() {
	f := reflectCmd.Flags()
	f.StringVar(&reflectForm.Journal, "journal", "", "morning journal text")
	f.StringVar(&reflectForm.Intention, "intention", "", "intention for the day")
	f.StringVar(&reflectForm.Dream, "dream", "", "dream recalled, if any")
	f.StringVar(&reflectForm.Priorities, "priorities", "", "top 3 priorities")
	f.StringVar(&reflectForm.Date, "date", "", "entry date (YYYY-MM-DD, default today)")
	f.BoolVar(&reflectOverwrite, "overwrite", false, "replace an existing entry for the date")
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func runReflect(cmd *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	tty := interactive()
	in := bufio.NewScanner(cmd.InOrStdin())
	form := reflectForm
	if tty {
		promptMissing(out, in, &form)
	}

	fmt.Fprintf(out, "AI status: %s\n\n", a.apiStatus())

	sub, err := a.agent.Submit(cmd.Context(), form, reflectOverwrite)
	if errors.Is(err, agent.ErrEntryExists) && tty && !reflectOverwrite {
		if !confirm(out, in, "An entry already exists for this date. Overwrite?") {
			return nil
		}
		sub, err = a.agent.Submit(cmd.Context(), form, true)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Reflection for %s\n\n", agent.FormatDate(sub.Entry.Date, "display"))
	printResult(out, sub.Result)
	return nil
}

// promptMissing asks for any required field left empty by flags.
func promptMissing(w io.Writer, in *bufio.Scanner, f *agent.Form) {
	ask := func(label string, dst *string) {
		if strings.TrimSpace(*dst) != "" {
			return
		}
		fmt.Fprintf(w, "%s: ", label)
		if in.Scan() {
			*dst = in.Text()
		}
	}
	ask("Morning journal", &f.Journal)
	ask("Intention for the day", &f.Intention)
	ask("Dream (optional)", &f.Dream)
	ask("Top 3 priorities", &f.Priorities)
}

func confirm(w io.Writer, in *bufio.Scanner, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	if !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}

func printResult(w io.Writer, r reflection.Result) {
	blocks := []struct {
		section reflection.Section
		body    string
	}{
		{reflection.SectionReflection, r.Reflection},
		{reflection.SectionDreamInterpretation, r.DreamInterpretation},
		{reflection.SectionMindsetInsight, r.MindsetInsight},
		{reflection.SectionStrategy, r.Strategy},
	}
	for _, b := range blocks {
		if b.body == "" {
			continue
		}
		fmt.Fprintf(w, "%s\n%s\n\n", reflection.Header(b.section), b.body)
	}
}

package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/jot/internal/db"
	"github.com/chris/jot/internal/reflection"
	"go.uber.org/zap"
)

// MaxInputLength caps each free-text field before it reaches the model.
const MaxInputLength = 10000

const dateLayout = "2006-01-02"

var (
	ErrValidation  = errors.New("invalid entry")
	ErrEntryExists = errors.New("an entry already exists for this date")
	ErrNotFound    = errors.New("entry not found")
)

// Generator turns a request into a reflection; see reflection.Generator.
type Generator interface {
	Generate(ctx context.Context, req reflection.Request) reflection.Result
}

type Agent struct {
	db  *db.DB
	gen Generator
	log *zap.Logger
	now func() time.Time
}

func New(database *db.DB, gen Generator, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{
		db:  database,
		gen: gen,
		log: log.With(zap.String("component", "agent")),
		now: time.Now,
	}
}

// Form is a morning entry as submitted by a user. An empty Date means today.
type Form struct {
	Date       string `json:"date"`
	Journal    string `json:"journal"`
	Intention  string `json:"intention"`
	Dream      string `json:"dream"`
	Priorities string `json:"priorities"`
}

// Sanitize trims s and caps it at MaxInputLength bytes without splitting a rune.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= MaxInputLength {
		return s
	}
	cut := MaxInputLength
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

// Validate checks required fields. It expects a sanitized form.
func (f Form) Validate() error {
	switch {
	case f.Journal == "":
		return fmt.Errorf("%w: please write something in your morning journal", ErrValidation)
	case f.Intention == "":
		return fmt.Errorf("%w: please set an intention for the day", ErrValidation)
	case f.Priorities == "":
		return fmt.Errorf("%w: please list your top 3 priorities", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, f.Date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, f.Date)
	}
	return nil
}

func (a *Agent) sanitize(f Form) Form {
	f.Date = strings.TrimSpace(f.Date)
	if f.Date == "" {
		f.Date = a.today()
	}
	f.Journal = Sanitize(f.Journal)
	f.Intention = Sanitize(f.Intention)
	f.Dream = Sanitize(f.Dream)
	f.Priorities = Sanitize(f.Priorities)
	return f
}

func (a *Agent) today() string {
	return a.now().Format(dateLayout)
}

// Submission is a saved entry together with its structured reflection.
type Submission struct {
	Entry  db.Entry          `json:"entry"`
	Result reflection.Result `json:"result"`
}

// Submit validates the form, generates a reflection and saves the entry.
// If an entry already exists for the date, overwrite must be set.
func (a *Agent) Submit(ctx context.Context, f Form, overwrite bool) (*Submission, error) {
	f = a.sanitize(f)
	if err := f.Validate(); err != nil {
		return nil, err
	}

	exists, err := a.db.EntryExists(f.Date)
	if err != nil {
		return nil, err
	}
	if exists && !overwrite {
		return nil, fmt.Errorf("%w: %s", ErrEntryExists, f.Date)
	}

	result := a.gen.Generate(ctx, reflection.Request{
		Journal:    f.Journal,
		Intention:  f.Intention,
		Dream:      f.Dream,
		Priorities: f.Priorities,
	})

	entry := db.Entry{
		Date:       f.Date,
		Journal:    f.Journal,
		Intention:  f.Intention,
		Dream:      f.Dream,
		Priorities: f.Priorities,
		Reflection: result.FullResponse,
		Strategy:   result.Strategy,
	}
	id, err := a.db.SaveEntry(entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	a.log.Info("entry saved", zap.String("date", f.Date), zap.Int64("id", id), zap.Bool("overwrite", exists))
	return &Submission{Entry: entry, Result: result}, nil
}

// View is a stored entry prepared for display.
type View struct {
	Entry db.Entry `json:"entry"`
	// Parsed is false for entries whose stored text has no section headers;
	// only Entry.Reflection and Entry.Strategy are meaningful then.
	Parsed   bool              `json:"parsed"`
	Sections reflection.Result `json:"sections"`
}

// BuildView re-parses an entry's stored completion text.
func BuildView(e db.Entry) View {
	full := e.Reflection
	if full == "" {
		full = e.Strategy
	}
	v := View{Entry: e}
	if strings.Contains(full, reflection.Header(reflection.SectionReflection)) {
		v.Parsed = true
		v.Sections = reflection.Assemble(full, reflection.Parse(full))
	}
	return v
}

// Entry returns the newest entry for date.
func (a *Agent) Entry(date string) (*View, error) {
	e, err := a.db.GetEntryByDate(date)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	v := BuildView(*e)
	return &v, nil
}

// Today returns today's entry, or ErrNotFound.
func (a *Agent) Today() (*View, error) {
	return a.Entry(a.today())
}

// Dates lists entry dates, newest first.
func (a *Agent) Dates() ([]string, error) {
	return a.db.ListDates()
}

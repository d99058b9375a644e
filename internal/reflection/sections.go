package reflection

import (
	"strings"
	"unicode"
)

// Section names one of the four blocks a completion is expected to contain.
type Section string

const (
	SectionReflection          Section = "reflection"
	SectionDreamInterpretation Section = "dream_interpretation"
	SectionMindsetInsight      Section = "mindset_insight"
	SectionStrategy            Section = "strategy"
)

// Header markers in canonical order. These exact strings are in every stored
// entry, so changing them breaks re-parsing of history.
var headers = []struct {
	section Section
	marker  string
}{
	{SectionReflection, "## Inner Reflection Summary"},
	{SectionDreamInterpretation, "## Dream Interpretation Summary"},
	{SectionMindsetInsight, "## Energy/Mindset Insight"},
	{SectionStrategy, "## Suggested Day Strategy"},
}

// Sections maps a section to its body. Sections that never appeared, or
// appeared with no content, are absent.
type Sections map[Section]string

// Header returns the marker line for s, or "" if s is unknown.
func Header(s Section) string {
	for _, h := range headers {
		if h.section == s {
			return h.marker
		}
	}
	return ""
}

// Parse splits text into sections using exact, case-sensitive header
// prefixes. It never fails. Blank lines inside a section are dropped, text
// before the first header is discarded, and a repeated header replaces the
// earlier body.
func Parse(text string) Sections {
	return parse(text, strictHeader)
}

// ParseLenient is Parse with forgiving header matching: any number of '#',
// any letter case, and trailing punctuation are accepted. Use it for fresh
// completions only; stored text is always re-parsed with Parse.
func ParseLenient(text string) Sections {
	return parse(text, lenientHeader)
}

func parse(text string, match func(line string) (Section, bool)) Sections {
	sections := Sections{}
	var current Section
	var content []string

	flush := func() {
		if current == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(content, "\n"))
		if body != "" {
			sections[current] = body
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if s, ok := match(line); ok {
			flush()
			current = s
			content = content[:0]
			continue
		}
		if current != "" && line != "" {
			content = append(content, line)
		}
	}
	flush()

	return sections
}

func strictHeader(line string) (Section, bool) {
	for _, h := range headers {
		if strings.HasPrefix(line, h.marker) {
			return h.section, true
		}
	}
	return "", false
}

func lenientHeader(line string) (Section, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", false
	}
	title := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
	title = strings.TrimRightFunc(title, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	for _, h := range headers {
		want := strings.ToLower(strings.TrimPrefix(h.marker, "## "))
		if strings.HasPrefix(title, want) {
			return h.section, true
		}
	}
	return "", false
}

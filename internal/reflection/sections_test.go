package reflection

import (
	"testing"

	"github.com/chris/jot/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestParse_CanonicalOrder(t *testing.T) {
	text := `## Inner Reflection Summary
This is a test reflection.

The reflection continues here.

## Dream Interpretation Summary
This is a test dream interpretation.

## Energy/Mindset Insight
This is a test mindset insight.

## Suggested Day Strategy
This is a test strategy.
With multiple lines.`

	got := Parse(text)

	assert.Equal(t, Sections{
		SectionReflection:          "This is a test reflection.\nThe reflection continues here.",
		SectionDreamInterpretation: "This is a test dream interpretation.",
		SectionMindsetInsight:      "This is a test mindset insight.",
		SectionStrategy:            "This is a test strategy.\nWith multiple lines.",
	}, got)
}

func TestParse_Total(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Sections
	}{
		{"empty", "", Sections{}},
		{"whitespace", "  \n\t\n", Sections{}},
		{"no headers", "just some prose\nwith two lines", Sections{}},
		{"headers only", "## Inner Reflection Summary\n## Dream Interpretation Summary\n## Energy/Mindset Insight\n## Suggested Day Strategy", Sections{}},
		{"header then blank lines", "## Energy/Mindset Insight\n\n   \n", Sections{}},
		{"wrong case is not a header", "## inner reflection summary\nbody", Sections{}},
		{"single hash is not a header", "# Inner Reflection Summary\nbody", Sections{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestParse_PreambleDiscarded(t *testing.T) {
	got := Parse("Sure! Here is your reflection.\n\n## Suggested Day Strategy\nWalk first.")
	assert.Equal(t, Sections{SectionStrategy: "Walk first."}, got)
}

func TestParse_DuplicateHeaderLastWins(t *testing.T) {
	text := "## Inner Reflection Summary\nfirst\n## Energy/Mindset Insight\nmid\n## Inner Reflection Summary\nsecond"
	got := Parse(text)
	assert.Equal(t, "second", got[SectionReflection])
	assert.Equal(t, "mid", got[SectionMindsetInsight])
}

func TestParse_DuplicateHeaderEmptyKeepsEarlier(t *testing.T) {
	text := "## Inner Reflection Summary\nfirst\n## Inner Reflection Summary\n"
	assert.Equal(t, "first", Parse(text)[SectionReflection])
}

func TestParse_OutOfOrder(t *testing.T) {
	text := "## Suggested Day Strategy\nD\n## Energy/Mindset Insight\nC\n## Dream Interpretation Summary\nB\n## Inner Reflection Summary\nA"
	assert.Equal(t, Sections{
		SectionReflection:          "A",
		SectionDreamInterpretation: "B",
		SectionMindsetInsight:      "C",
		SectionStrategy:            "D",
	}, Parse(text))
}

func TestParse_IndentedAndTrailingHeaderText(t *testing.T) {
	text := "   ## Inner Reflection Summary (today)\n    indented body   \n"
	assert.Equal(t, Sections{SectionReflection: "indented body"}, Parse(text))
}

func TestParse_CRLF(t *testing.T) {
	text := "## Inner Reflection Summary\r\nA\r\n\r\n## Suggested Day Strategy\r\nD\r\n"
	assert.Equal(t, Sections{SectionReflection: "A", SectionStrategy: "D"}, Parse(text))
}

func TestParse_Idempotent(t *testing.T) {
	text := "## Inner Reflection Summary\nA\n## Suggested Day Strategy\nD"
	assert.Equal(t, Parse(text), Parse(text))
}

func TestParse_FallbackText(t *testing.T) {
	got := Parse(llm.FallbackResponse)

	assert.Len(t, got, 4)
	assert.Equal(t, "I'm currently unable to process your journal entry due to a technical issue. However, taking time to write down your thoughts is already a valuable practice for self-reflection.", got[SectionReflection])
	assert.Equal(t, "Dreams often reflect our subconscious processing of daily experiences and emotions. Consider what themes or feelings stood out to you.", got[SectionDreamInterpretation])
	assert.Equal(t, "Your intention and priorities show that you're actively working to create meaningful days. This self-awareness is a strength to build upon.", got[SectionMindsetInsight])
	assert.Equal(t, "1. Start with your most important priority when your energy is highest\n"+
		"2. Take regular breaks to check in with yourself\n"+
		"3. Stay flexible and adjust your plan as needed\n"+
		"4. End the day with gratitude for what you accomplished\n"+
		"*Note: This is a simplified response due to technical limitations. Please try again later for a more personalized analysis.*",
		got[SectionStrategy])
}

func TestParseLenient(t *testing.T) {
	text := "### inner reflection summary:\nA\n# DREAM INTERPRETATION SUMMARY\nB\n## Energy/Mindset Insight\nC\n####   Suggested Day Strategy -\nD"
	assert.Equal(t, Sections{
		SectionReflection:          "A",
		SectionDreamInterpretation: "B",
		SectionMindsetInsight:      "C",
		SectionStrategy:            "D",
	}, ParseLenient(text))

	// Strict parsing only sees the exact marker; the rest is body text.
	assert.Equal(t, Sections{SectionMindsetInsight: "C\n####   Suggested Day Strategy -\nD"}, Parse(text))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "## Suggested Day Strategy", Header(SectionStrategy))
	assert.Equal(t, "", Header(Section("nope")))
}

package reflection

import "github.com/chris/jot/internal/llm"

// Request holds the four free-text inputs of a morning entry.
type Request struct {
	Journal    string `json:"journal"`
	Intention  string `json:"intention"`
	Dream      string `json:"dream"`
	Priorities string `json:"priorities"`
}

// Result is the structured reflection. FullResponse is the exact text the
// other fields were parsed from; missing sections are empty strings.
type Result struct {
	Reflection          string `json:"reflection"`
	DreamInterpretation string `json:"dream_interpretation"`
	MindsetInsight      string `json:"mindset_insight"`
	Strategy            string `json:"strategy"`
	FullResponse        string `json:"full_response"`
}

// Assemble builds a Result from raw text and its parsed sections.
func Assemble(fullResponse string, s Sections) Result {
	return Result{
		Reflection:          s[SectionReflection],
		DreamInterpretation: s[SectionDreamInterpretation],
		MindsetInsight:      s[SectionMindsetInsight],
		Strategy:            s[SectionStrategy],
		FullResponse:        fullResponse,
	}
}

// PlaceholderResult is returned when generation itself breaks.
func PlaceholderResult() Result {
	return Result{
		Reflection:          "Unable to generate reflection at this time.",
		DreamInterpretation: "Unable to interpret dream at this time.",
		MindsetInsight:      "Unable to provide mindset insight at this time.",
		Strategy:            "Please focus on your top priorities for today.",
		FullResponse:        llm.FallbackResponse,
	}
}

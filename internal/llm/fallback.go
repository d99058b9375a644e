package llm

// FallbackResponse is returned whenever a live completion is unavailable.
// It carries the same four headers as a real completion, so it parses the
// same way. Stored entries contain this text verbatim; do not edit it.
const FallbackResponse = `
## Inner Reflection Summary
I'm currently unable to process your journal entry due to a technical issue. However, taking time to write down your thoughts is already a valuable practice for self-reflection.

## Dream Interpretation Summary
Dreams often reflect our subconscious processing of daily experiences and emotions. Consider what themes or feelings stood out to you.

## Energy/Mindset Insight
Your intention and priorities show that you're actively working to create meaningful days. This self-awareness is a strength to build upon.

## Suggested Day Strategy
1. Start with your most important priority when your energy is highest
2. Take regular breaks to check in with yourself
3. Stay flexible and adjust your plan as needed
4. End the day with gratitude for what you accomplished

*Note: This is a simplified response due to technical limitations. Please try again later for a more personalized analysis.*
`

package sections

import "strings"

// EstimateTokens gives a rough token count as a budget hint for downstream
// consumers. Exact tokenization is not required: roughly 1.33 tokens per
// English word, never 0 for non-empty text.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	tokens := int(float64(len(strings.Fields(text))) * 1.33)
	if tokens < 1 {
		return 1
	}
	return tokens
}

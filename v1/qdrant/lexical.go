package qdrant

import "strings"

// lexicalScore ranks a keyword match by term overlap: the fraction of
// distinct query terms present in the document text, in [0, 1].
//
// Qdrant's full-text index decides WHICH documents match; this decides
// how well, so keyword results carry a score comparable enough for
// fusion with the k-NN legs.
func lexicalScore(query, text string) float64 {
	queryTerms := tokenize(query)
	if len(queryTerms) == 0 {
		return 0
	}

	docTerms := make(map[string]struct{})
	for _, t := range tokenize(text) {
		docTerms[t] = struct{}{}
	}

	seen := make(map[string]struct{}, len(queryTerms))
	matched := 0
	for _, t := range queryTerms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := docTerms[t]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(seen))
}

// tokenize lower-cases and splits on anything that is not a letter or
// digit, mirroring the default text index tokenizer.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isAlphanumeric(r)
	})
}

func isAlphanumeric(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r > 127
}

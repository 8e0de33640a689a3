package vocab

import (
	"sort"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// MaxRecommendations bounds the length of a practice list.
const MaxRecommendations = 5

// Recommend selects up to MaxRecommendations practice words for a child.
//
// Known words with confidence below types.LowConfidenceThreshold come first,
// ordered by typical age with unknown words last; equal ages keep the order
// the words were logged in. Remaining slots are filled from the corpus in
// its native order, skipping any word the child already has at any
// confidence. A word listed more than once is filled from its first row. A nil corpus behaves like an empty one.
func Recommend(child types.Child, corpus *Corpus) []types.PracticeRecommendation {
	words := child.Words
	recs := make([]types.PracticeRecommendation, 0, MaxRecommendations)

	for _, w := range words {
		if !w.IsLowConfidence() {
			continue
		}
		recs = append(recs, types.PracticeRecommendation{
			Word:             w.Word,
			Confidence:       w.Confidence,
			TypicalAgeMonths: corpus.TypicalAge(w.Word),
			InVocabulary:     true,
			Strategy:         corpus.Strategy(w.Word),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].TypicalAgeMonths < recs[j].TypicalAgeMonths
	})
	if len(recs) >= MaxRecommendations {
		return recs[:MaxRecommendations]
	}

	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[Normalize(w.Word)] = true
	}
	for _, tw := range corpus.Words() {
		if len(recs) == MaxRecommendations {
			break
		}
		key := Normalize(tw.Word)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		recs = append(recs, types.PracticeRecommendation{
			Word:             tw.Word,
			Confidence:       0,
			TypicalAgeMonths: tw.TypicalAgeMonths,
			InVocabulary:     false,
			Strategy:         strategyOf(tw),
		})
	}
	return recs
}

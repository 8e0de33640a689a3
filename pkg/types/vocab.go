package types

// TypicalWord is one row of the reference corpus: a word, the age in months
// at which children typically acquire it, and an optional strategy for
// teaching it.
type TypicalWord struct {
	Word             string  `json:"word"`
	TypicalAgeMonths float64 `json:"typical_age_months"`
	LearningStrategy string  `json:"learning_strategy,omitempty"`
}

// PracticeRecommendation is a word surfaced to the caregiver for practice,
// either a known word with low confidence or an unlearned typical word.
type PracticeRecommendation struct {
	Word             string  `json:"word"`
	Confidence       int     `json:"confidence"`
	TypicalAgeMonths float64 `json:"typical_age_months"`
	InVocabulary     bool    `json:"in_vocabulary"`
	Strategy         string  `json:"strategy"`
}

// GrowthPoint is one age bucket of a vocabulary-growth series.
type GrowthPoint struct {
	AgeMonths       int      `json:"age_months"`
	CumulativeTotal int      `json:"cumulative_total"`
	NewWordCount    int      `json:"new_word_count"`
	NewWords        []string `json:"new_words"`
}

package vocab

import (
	"strings"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// UnknownAge is the typical age reported for a word missing from the
// corpus. It sorts after every real age.
const UnknownAge = 999

// DefaultStrategy is returned when a word has no learning strategy.
const DefaultStrategy = "Practice this word regularly with your child."

// Corpus is the reference list of typical words. It keeps the rows in the
// order they were given and indexes them by normalized word.
type Corpus struct {
	records []types.TypicalWord
	index   map[string]int
}

// NewCorpus builds a Corpus over records. The slice is copied. When a word
// appears more than once, lookups resolve to the last occurrence while
// Words still lists every row.
func NewCorpus(records []types.TypicalWord) *Corpus {
	c := &Corpus{
		records: make([]types.TypicalWord, len(records)),
		index:   make(map[string]int, len(records)),
	}
	copy(c.records, records)
	for i, r := range c.records {
		c.index[Normalize(r.Word)] = i
	}
	return c
}

func (c *Corpus) lookup(word string) (types.TypicalWord, bool) {
	if c == nil {
		return types.TypicalWord{}, false
	}
	i, ok := c.index[Normalize(word)]
	if !ok {
		return types.TypicalWord{}, false
	}
	return c.records[i], true
}

// TypicalAge returns the typical acquisition age in months for word, or
// UnknownAge when the corpus does not list it.
func (c *Corpus) TypicalAge(word string) float64 {
	r, ok := c.lookup(word)
	if !ok {
		return UnknownAge
	}
	return r.TypicalAgeMonths
}

// Strategy returns the learning strategy for word, or DefaultStrategy when
// the word is missing or has a blank strategy.
func (c *Corpus) Strategy(word string) string {
	r, ok := c.lookup(word)
	if !ok {
		return DefaultStrategy
	}
	return strategyOf(r)
}

// strategyOf returns the row's strategy, or DefaultStrategy when blank.
func strategyOf(r types.TypicalWord) string {
	if strings.TrimSpace(r.LearningStrategy) == "" {
		return DefaultStrategy
	}
	return r.LearningStrategy
}

// Words returns a copy of the records in native order.
func (c *Corpus) Words() []types.TypicalWord {
	if c == nil {
		return nil
	}
	out := make([]types.TypicalWord, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of rows.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

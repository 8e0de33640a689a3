package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

func TestCorpusLookup(t *testing.T) {
	c := NewCorpus([]types.TypicalWord{
		{Word: "Mama", TypicalAgeMonths: 8, LearningStrategy: "Say it when mom enters the room."},
		{Word: "dog", TypicalAgeMonths: 10},
		{Word: "ball", TypicalAgeMonths: 12, LearningStrategy: "   "},
	})

	assert.Equal(t, 8.0, c.TypicalAge("mama"))
	assert.Equal(t, 8.0, c.TypicalAge(" MAMA"))
	assert.Equal(t, float64(UnknownAge), c.TypicalAge("giraffe"))

	assert.Equal(t, "Say it when mom enters the room.", c.Strategy("mAmA"))
	assert.Equal(t, DefaultStrategy, c.Strategy("dog"), "empty strategy falls back")
	assert.Equal(t, DefaultStrategy, c.Strategy("ball"), "blank strategy falls back")
	assert.Equal(t, DefaultStrategy, c.Strategy("giraffe"), "missing word falls back")

	assert.Equal(t, 3, c.Len())
}

func TestCorpusDuplicateWordsResolveToLastRow(t *testing.T) {
	c := NewCorpus([]types.TypicalWord{
		{Word: "up", TypicalAgeMonths: 9, LearningStrategy: "first"},
		{Word: "Up", TypicalAgeMonths: 14, LearningStrategy: "second"},
	})

	assert.Equal(t, 14.0, c.TypicalAge("up"))
	assert.Equal(t, "second", c.Strategy("up"))
	assert.Len(t, c.Words(), 2, "native order keeps every row")
}

func TestCorpusWordsIsACopy(t *testing.T) {
	records := []types.TypicalWord{{Word: "up", TypicalAgeMonths: 9}}
	c := NewCorpus(records)
	records[0].Word = "down"

	words := c.Words()
	assert.Equal(t, "up", words[0].Word)
	words[0].Word = "changed"
	assert.Equal(t, "up", c.Words()[0].Word)
}

func TestNilCorpus(t *testing.T) {
	var c *Corpus
	assert.Equal(t, float64(UnknownAge), c.TypicalAge("up"))
	assert.Equal(t, DefaultStrategy, c.Strategy("up"))
	assert.Empty(t, c.Words())
	assert.Zero(t, c.Len())
}

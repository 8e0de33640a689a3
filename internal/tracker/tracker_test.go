package tracker

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/firstwords/internal/export"
	"github.com/mesh-intelligence/firstwords/internal/sqlite"
	"github.com/mesh-intelligence/firstwords/internal/vocab"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

func testCorpus() *vocab.Corpus {
	return vocab.NewCorpus([]types.TypicalWord{
		{Word: "up", TypicalAgeMonths: 9},
		{Word: "ball", TypicalAgeMonths: 12},
		{Word: "dog", TypicalAgeMonths: 10, LearningStrategy: "Point out dogs on walks."},
		{Word: "mama", TypicalAgeMonths: 8},
	})
}

// newTestTracker returns a tracker over a fresh backend in a temp dir. The
// data dir is returned so tests can reattach.
func newTestTracker(t *testing.T) (*Tracker, string) {
	t.Helper()
	dataDir := t.TempDir()
	return attachTracker(t, dataDir), dataDir
}

// attachTracker attaches a new backend to dataDir. Writes are persisted
// immediately, so several sessions may share a directory in a test.
func attachTracker(t *testing.T, dataDir string) *Tracker {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { b.Detach() })
	return New(b, testCorpus(), nil)
}

func date(s string) types.Date { return types.MustParseDate(s) }

func TestRegisterAndLogout(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.CurrentCaregiver()
	assert.ErrorIs(t, err, types.ErrNotRegistered)
	assert.ErrorIs(t, tr.Logout(), types.ErrNotRegistered)

	_, err = tr.Register("   ")
	assert.ErrorIs(t, err, types.ErrInvalidName)

	c, err := tr.Register("Sam")
	require.NoError(t, err)
	assert.Equal(t, "Sam", c.Name)

	_, err = tr.Register("Alex")
	assert.ErrorIs(t, err, types.ErrAlreadyPresent)

	current, err := tr.CurrentCaregiver()
	require.NoError(t, err)
	assert.Equal(t, c.CaregiverID, current.CaregiverID)

	require.NoError(t, tr.Logout())
	_, err = tr.CurrentCaregiver()
	assert.ErrorIs(t, err, types.ErrNotRegistered)
}

func TestLogoutKeepsChildren(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.Register("Sam")
	require.NoError(t, err)
	_, err = tr.AddChild("Ada", nil)
	require.NoError(t, err)

	require.NoError(t, tr.Logout())
	children, err := tr.Children()
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestChildren(t *testing.T) {
	tr, _ := newTestTracker(t)

	bday := date("2023-05-20")
	_, err := tr.AddChild("Ada", &bday)
	require.NoError(t, err)
	_, err = tr.AddChild(" Bo ", nil)
	require.NoError(t, err)

	_, err = tr.AddChild("Ada", nil)
	assert.ErrorIs(t, err, types.ErrDuplicateName)
	_, err = tr.AddChild("", nil)
	assert.ErrorIs(t, err, types.ErrInvalidName)

	children, err := tr.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Ada", children[0].Name)
	assert.Equal(t, "Bo", children[1].Name)
	assert.True(t, children[0].HasBirthday())
	assert.False(t, children[1].HasBirthday())

	_, err = tr.Child("Cy")
	assert.ErrorIs(t, err, types.ErrNotFound)

	updated, err := tr.SetBirthday("Bo", date("2024-02-29"))
	require.NoError(t, err)
	assert.Equal(t, date("2024-02-29"), *updated.Birthday)

	_, err = tr.SetBirthday("Bo", types.Date{})
	assert.ErrorIs(t, err, types.ErrValidation)

	require.NoError(t, tr.DeleteChild("Ada"))
	assert.ErrorIs(t, tr.DeleteChild("Ada"), types.ErrNotFound)
}

func TestWords(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.AddChild("Ada", nil)
	require.NoError(t, err)

	up, err := tr.AddWord("Ada", types.WordEntry{Word: "  up ", DateAdded: date("2024-01-10"), Speaks: true, Confidence: 30})
	require.NoError(t, err)
	assert.Equal(t, "up", up.Word, "word is trimmed")
	assert.NotEmpty(t, up.WordID)

	ball, err := tr.AddWord("Ada", types.WordEntry{Word: "ball", DateAdded: date("2024-02-01"), ASL: true, Confidence: 80})
	require.NoError(t, err)

	_, err = tr.AddWord("Ada", types.WordEntry{Word: "dog", DateAdded: date("2024-02-01"), Confidence: 101})
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = tr.AddWord("Ada", types.WordEntry{Word: " ", DateAdded: date("2024-02-01")})
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = tr.AddWord("Nobody", types.WordEntry{Word: "dog", DateAdded: date("2024-02-01")})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = tr.UpdateWord("Ada", up.WordID, types.WordEntry{Word: "Up", DateAdded: date("2024-01-11"), Speaks: true, Confidence: 60})
	require.NoError(t, err)

	child, err := tr.Child("Ada")
	require.NoError(t, err)
	require.Len(t, child.Words, 2)
	assert.Equal(t, "Up", child.Words[0].Word, "edit replaces in place")
	assert.Equal(t, 60, child.Words[0].Confidence)
	assert.Equal(t, "ball", child.Words[1].Word)

	_, err = tr.UpdateWord("Ada", "missing", types.WordEntry{Word: "x", DateAdded: date("2024-01-11")})
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, tr.DeleteWord("Ada", ball.WordID))
	assert.ErrorIs(t, tr.DeleteWord("Ada", ball.WordID), types.ErrNotFound)

	child, err = tr.Child("Ada")
	require.NoError(t, err)
	assert.Len(t, child.Words, 1)
}

func TestWordIDsAreScopedToChild(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.AddChild("Ada", nil)
	require.NoError(t, err)
	_, err = tr.AddChild("Bo", nil)
	require.NoError(t, err)

	w, err := tr.AddWord("Ada", types.WordEntry{Word: "up", DateAdded: date("2024-01-10"), Confidence: 30})
	require.NoError(t, err)

	assert.ErrorIs(t, tr.DeleteWord("Bo", w.WordID), types.ErrNotFound)
}

func TestPractice(t *testing.T) {
	tr, _ := newTestTracker(t)
	bday := date("2024-01-15")
	_, err := tr.AddChild("Ada", &bday)
	require.NoError(t, err)

	recs, err := tr.Practice("Ada")
	require.NoError(t, err)
	assert.Len(t, recs, 4, "corpus has four words")

	_, err = tr.AddWord("Ada", types.WordEntry{Word: "up", DateAdded: bday, Confidence: 30})
	require.NoError(t, err)
	_, err = tr.AddWord("Ada", types.WordEntry{Word: "ball", DateAdded: date("2024-02-15"), Confidence: 80})
	require.NoError(t, err)

	recs, err = tr.Practice("Ada")
	require.NoError(t, err)
	var words []string
	for _, r := range recs {
		words = append(words, r.Word)
	}
	assert.Equal(t, []string{"up", "dog", "mama"}, words)
	assert.True(t, recs[0].InVocabulary)
	assert.Equal(t, "Point out dogs on walks.", recs[1].Strategy)

	_, err = tr.Practice("Nobody")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGrowth(t *testing.T) {
	tr, dataDir := newTestTracker(t)
	_, err := tr.AddChild("Ada", nil)
	require.NoError(t, err)
	_, err = tr.AddWord("Ada", types.WordEntry{Word: "up", DateAdded: date("2024-03-10"), Confidence: 30})
	require.NoError(t, err)

	points, ok, err := tr.Growth("Ada")
	require.NoError(t, err)
	assert.False(t, ok, "no birthday means insufficient data")
	assert.Nil(t, points)

	_, err = tr.SetBirthday("Ada", date("2024-01-15"))
	require.NoError(t, err)
	_, err = tr.AddWord("Ada", types.WordEntry{Word: "dog", DateAdded: date("2024-03-28"), Confidence: 30})
	require.NoError(t, err)
	_, err = tr.AddWord("Ada", types.WordEntry{Word: "mama", DateAdded: date("2024-01-20"), Confidence: 30})
	require.NoError(t, err)

	// A new session over the same data sees the same series.
	tr = attachTracker(t, dataDir)

	points, ok, err = tr.Growth("Ada")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []types.GrowthPoint{
		{AgeMonths: 0, CumulativeTotal: 1, NewWordCount: 1, NewWords: []string{"mama"}},
		{AgeMonths: 2, CumulativeTotal: 3, NewWordCount: 2, NewWords: []string{"up", "dog"}},
	}, points)
}

func TestExport(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.AddChild("Ada", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, tr.Export("Ada", &buf), export.ErrNoWords)

	_, err = tr.AddWord("Ada", types.WordEntry{Word: "up", DateAdded: date("2024-03-10"), Speaks: true, Confidence: 30})
	require.NoError(t, err)

	require.NoError(t, tr.Export("Ada", &buf))
	assert.Equal(t, "Word,Date First Used,Speaks,ASL,Confidence %\nup,2024-03-10,Yes,No,30\n", buf.String())
}

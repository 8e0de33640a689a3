package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []types.TypicalWord
		wantErr error
	}{
		{
			name:  "all columns",
			input: "Word,Typical Age (Months),Learning Strategy\nmama,8,Wave\nup,9.5,\n",
			want: []types.TypicalWord{
				{Word: "mama", TypicalAgeMonths: 8, LearningStrategy: "Wave"},
				{Word: "up", TypicalAgeMonths: 9.5},
			},
		},
		{
			name:  "strategy column optional",
			input: "Word,Typical Age (Months)\ndog,10\n",
			want:  []types.TypicalWord{{Word: "dog", TypicalAgeMonths: 10}},
		},
		{
			name:  "header matched case-insensitively with extra columns",
			input: "category, typical age (months) ,WORD\nanimal,12,cat\n",
			want:  []types.TypicalWord{{Word: "cat", TypicalAgeMonths: 12}},
		},
		{
			name:  "blank words skipped",
			input: "Word,Typical Age (Months)\n,8\n  ,9\nball,12\n",
			want:  []types.TypicalWord{{Word: "ball", TypicalAgeMonths: 12}},
		},
		{
			name:  "quoted strategy with commas",
			input: "Word,Typical Age (Months),Learning Strategy\nmore,12,\"Sign, then say more\"\n",
			want:  []types.TypicalWord{{Word: "more", TypicalAgeMonths: 12, LearningStrategy: "Sign, then say more"}},
		},
		{
			name:  "byte order mark",
			input: "\ufeffWord,Typical Age (Months)\nhi,10\n",
			want:  []types.TypicalWord{{Word: "hi", TypicalAgeMonths: 10}},
		},
		{
			name:  "empty input",
			input: "",
			want:  []types.TypicalWord{},
		},
		{
			name:    "missing word column",
			input:   "Term,Typical Age (Months)\nup,9\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "missing age column",
			input:   "Word\nup\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "non numeric age",
			input:   "Word,Typical Age (Months)\nup,soon\n",
			wantErr: ErrInvalidAge,
		},
		{
			name:    "NaN age",
			input:   "Word,Typical Age (Months)\nzebra,NaN\ndog,10\n",
			wantErr: ErrInvalidAge,
		},
		{
			name:    "infinite age",
			input:   "Word,Typical Age (Months)\nup,9\nzebra,+Inf\n",
			wantErr: ErrInvalidAge,
		},
		{
			name:    "negative infinite age",
			input:   "Word,Typical Age (Months)\nzebra,-inf\n",
			wantErr: ErrInvalidAge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadReportsLine(t *testing.T) {
	_, err := Load(strings.NewReader("Word,Typical Age (Months)\nup,9\ndog,ten\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestDefault(t *testing.T) {
	records, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	seen := map[string]bool{}
	for _, r := range records {
		assert.NotEmpty(t, r.Word)
		assert.Greater(t, r.TypicalAgeMonths, 0.0)
		assert.NotEmpty(t, r.LearningStrategy, "default corpus carries a strategy for %q", r.Word)
		assert.False(t, seen[r.Word], "duplicate word %q", r.Word)
		seen[r.Word] = true
	}
	assert.Equal(t, "mama", records[0].Word)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("Word,Typical Age (Months)\nup,9\n"), 0o644))

	records, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []types.TypicalWord{{Word: "up", TypicalAgeMonths: 9}}, records)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSortByAge(t *testing.T) {
	records := []types.TypicalWord{
		{Word: "ball", TypicalAgeMonths: 12},
		{Word: "up", TypicalAgeMonths: 9},
		{Word: "dog", TypicalAgeMonths: 12},
		{Word: "mama", TypicalAgeMonths: 8},
	}
	SortByAge(records)

	var words []string
	for _, r := range records {
		words = append(words, r.Word)
	}
	assert.Equal(t, []string{"mama", "up", "ball", "dog"}, words)
}

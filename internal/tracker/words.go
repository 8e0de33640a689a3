package tracker

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// AddWord logs a word for the named child. The word is trimmed and the
// entry validated before anything is stored; an invalid entry returns an
// error matching types.ErrValidation.
func (t *Tracker) AddWord(childName string, entry types.WordEntry) (*types.WordEntry, error) {
	entry.Word = strings.TrimSpace(entry.Word)
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	c, err := t.Child(childName)
	if err != nil {
		return nil, err
	}
	words, err := t.table(types.WordsTable)
	if err != nil {
		return nil, err
	}

	entry.WordID = ""
	entry.ChildID = c.ChildID
	if _, err := words.Set("", &entry); err != nil {
		return nil, fmt.Errorf("adding %q for %s: %w", entry.Word, c.Name, err)
	}
	t.logger.Info("word added", "child", c.Name, "word", entry.Word, "confidence", entry.Confidence)
	return &entry, nil
}

// UpdateWord replaces the word with the given ID in place, keeping its
// position in the child's list.
func (t *Tracker) UpdateWord(childName, wordID string, entry types.WordEntry) (*types.WordEntry, error) {
	entry.Word = strings.TrimSpace(entry.Word)
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	c, existing, err := t.childWord(childName, wordID)
	if err != nil {
		return nil, err
	}
	words, err := t.table(types.WordsTable)
	if err != nil {
		return nil, err
	}

	entry.WordID = existing.WordID
	entry.ChildID = c.ChildID
	if _, err := words.Set(existing.WordID, &entry); err != nil {
		return nil, fmt.Errorf("updating %q for %s: %w", existing.Word, c.Name, err)
	}
	t.logger.Info("word updated", "child", c.Name, "word", entry.Word)
	return &entry, nil
}

// DeleteWord removes the word with the given ID from the named child.
func (t *Tracker) DeleteWord(childName, wordID string) error {
	c, existing, err := t.childWord(childName, wordID)
	if err != nil {
		return err
	}
	words, err := t.table(types.WordsTable)
	if err != nil {
		return err
	}
	if err := words.Delete(existing.WordID); err != nil {
		return fmt.Errorf("deleting %q for %s: %w", existing.Word, c.Name, err)
	}
	t.logger.Info("word deleted", "child", c.Name, "word", existing.Word)
	return nil
}

// childWord loads the child and finds one of their words by ID.
func (t *Tracker) childWord(childName, wordID string) (*types.Child, *types.WordEntry, error) {
	c, err := t.Child(childName)
	if err != nil {
		return nil, nil, err
	}
	for i := range c.Words {
		if c.Words[i].WordID == wordID {
			return c, &c.Words[i], nil
		}
	}
	return nil, nil, fmt.Errorf("word %s of %s: %w", wordID, c.Name, types.ErrNotFound)
}

package tracker

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// AddChild starts tracking a child. Names are unique; a repeated name
// returns ErrDuplicateName. birthday may be nil.
func (t *Tracker) AddChild(name string, birthday *types.Date) (*types.Child, error) {
	children, err := t.table(types.ChildrenTable)
	if err != nil {
		return nil, err
	}
	c := &types.Child{Name: strings.TrimSpace(name), Birthday: birthday}
	if _, err := children.Set("", c); err != nil {
		return nil, fmt.Errorf("adding child %q: %w", c.Name, err)
	}
	t.logger.Info("child added", "child", c.Name, "has_birthday", c.HasBirthday())
	return c, nil
}

// Children lists children in the order they were added, without words.
func (t *Tracker) Children() ([]types.Child, error) {
	children, err := t.table(types.ChildrenTable)
	if err != nil {
		return nil, err
	}
	all, err := children.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("listing children: %w", err)
	}
	out := make([]types.Child, len(all))
	for i, c := range all {
		out[i] = *c.(*types.Child)
	}
	return out, nil
}

// Child loads a snapshot of the named child including their words in the
// order they were logged. Returns an error matching ErrNotFound when no
// child has that name.
func (t *Tracker) Child(name string) (*types.Child, error) {
	children, err := t.table(types.ChildrenTable)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	matches, err := children.Fetch(types.Filter{"name": name})
	if err != nil {
		return nil, fmt.Errorf("finding child %q: %w", name, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("child %q: %w", name, types.ErrNotFound)
	}
	got, err := children.Get(matches[0].(*types.Child).ChildID)
	if err != nil {
		return nil, fmt.Errorf("loading child %q: %w", name, err)
	}
	return got.(*types.Child), nil
}

// SetBirthday records or replaces the named child's birthday.
func (t *Tracker) SetBirthday(name string, birthday types.Date) (*types.Child, error) {
	if birthday.IsZero() {
		return nil, &types.ValidationError{Field: "birthday", Message: "must not be empty"}
	}
	c, err := t.Child(name)
	if err != nil {
		return nil, err
	}
	children, err := t.table(types.ChildrenTable)
	if err != nil {
		return nil, err
	}
	c.Birthday = &birthday
	if _, err := children.Set(c.ChildID, c); err != nil {
		return nil, fmt.Errorf("setting birthday of %q: %w", c.Name, err)
	}
	t.logger.Info("birthday set", "child", c.Name, "birthday", birthday.String())
	return c, nil
}

// DeleteChild stops tracking the named child and removes all their words.
func (t *Tracker) DeleteChild(name string) error {
	c, err := t.Child(name)
	if err != nil {
		return err
	}
	children, err := t.table(types.ChildrenTable)
	if err != nil {
		return err
	}
	if err := children.Delete(c.ChildID); err != nil {
		return fmt.Errorf("deleting child %q: %w", c.Name, err)
	}
	t.logger.Info("child deleted", "child", c.Name, "words", len(c.Words))
	return nil
}

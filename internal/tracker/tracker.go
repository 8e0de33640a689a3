// Package tracker is the service layer between the command line and the
// store. Every operation loads what it needs from the Cupboard, applies the
// change or runs the vocab engine over that snapshot, and writes back before
// returning. No state is held between calls.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/firstwords/internal/vocab"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// Tracker records children and their words and serves recommendations and
// growth series. The Cupboard must be attached for the Tracker's lifetime.
type Tracker struct {
	cupboard types.Cupboard
	corpus   *vocab.Corpus
	logger   *slog.Logger
}

// New returns a Tracker over an attached cupboard. A nil logger discards.
func New(cupboard types.Cupboard, corpus *vocab.Corpus, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{cupboard: cupboard, corpus: corpus, logger: logger}
}

func (t *Tracker) table(name string) (types.Table, error) {
	tbl, err := t.cupboard.GetTable(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s table: %w", name, err)
	}
	return tbl, nil
}

// Register records the caregiver using the tracker. Only one caregiver may
// be registered at a time.
func (t *Tracker) Register(name string) (*types.Caregiver, error) {
	if strings.TrimSpace(name) == "" {
		return nil, types.ErrInvalidName
	}
	if _, err := t.CurrentCaregiver(); err == nil {
		return nil, types.ErrAlreadyPresent
	} else if !errors.Is(err, types.ErrNotRegistered) {
		return nil, err
	}

	caregivers, err := t.table(types.CaregiversTable)
	if err != nil {
		return nil, err
	}
	c := &types.Caregiver{Name: name}
	if _, err := caregivers.Set("", c); err != nil {
		return nil, fmt.Errorf("registering caregiver: %w", err)
	}
	t.logger.Info("caregiver registered", "name", c.Name)
	return c, nil
}

// CurrentCaregiver returns the registered caregiver or ErrNotRegistered.
func (t *Tracker) CurrentCaregiver() (*types.Caregiver, error) {
	caregivers, err := t.table(types.CaregiversTable)
	if err != nil {
		return nil, err
	}
	all, err := caregivers.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("fetching caregivers: %w", err)
	}
	if len(all) == 0 {
		return nil, types.ErrNotRegistered
	}
	return all[0].(*types.Caregiver), nil
}

// Logout removes the registered caregiver. Children and words are kept.
func (t *Tracker) Logout() error {
	c, err := t.CurrentCaregiver()
	if err != nil {
		return err
	}
	caregivers, err := t.table(types.CaregiversTable)
	if err != nil {
		return err
	}
	if err := caregivers.Delete(c.CaregiverID); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	t.logger.Info("caregiver logged out", "name", c.Name)
	return nil
}

package tracker

import (
	"fmt"
	"io"

	"github.com/mesh-intelligence/firstwords/internal/export"
	"github.com/mesh-intelligence/firstwords/internal/vocab"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// Practice returns up to five words the named child should practice next.
func (t *Tracker) Practice(childName string) ([]types.PracticeRecommendation, error) {
	c, err := t.Child(childName)
	if err != nil {
		return nil, err
	}
	recs := vocab.Recommend(*c, t.corpus)
	t.logger.Debug("practice words selected", "child", c.Name, "words", len(c.Words), "recommendations", len(recs))
	return recs, nil
}

// Growth returns the named child's cumulative vocabulary series by age in
// months. ok is false when the child has no birthday.
func (t *Tracker) Growth(childName string) (points []types.GrowthPoint, ok bool, err error) {
	c, err := t.Child(childName)
	if err != nil {
		return nil, false, err
	}
	points, ok = vocab.Aggregate(*c)
	t.logger.Debug("growth aggregated", "child", c.Name, "buckets", len(points), "has_birthday", ok)
	return points, ok, nil
}

// Export writes the named child's vocabulary as CSV. A child with no words
// returns export.ErrNoWords.
func (t *Tracker) Export(childName string, w io.Writer) error {
	c, err := t.Child(childName)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, c.Words); err != nil {
		return fmt.Errorf("exporting %s: %w", c.Name, err)
	}
	t.logger.Info("vocabulary exported", "child", c.Name, "words", len(c.Words))
	return nil
}

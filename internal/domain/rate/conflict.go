package rate

import (
	"context"
	"time"
)

// Conflict names the span of existing CUSTOM intervals a proposal would
// overwrite. It is a report, not an error: the caller decides whether to
// proceed with the reconciliation.
type Conflict struct {
	Count   int
	MinFrom time.Time
	MaxTo   time.Time
}

// DetectConflicts runs the same overlap scan as the reconciler without
// mutating anything. ok is false when the proposal touches no existing
// custom interval.
func DetectConflicts(ctx context.Context, store Store, p Proposal) (Conflict, bool, error) {
	p = p.normalize()
	if err := p.Validate(); err != nil {
		return Conflict{}, false, err
	}
	existing, err := store.Find(ctx, p.RoomID, p.Kind, DayCustom)
	if err != nil {
		return Conflict{}, false, err
	}
	var c Conflict
	for _, m := range existing {
		if !m.Overlaps(p.From, p.To) {
			continue
		}
		if c.Count == 0 || m.From.Before(c.MinFrom) {
			c.MinFrom = m.From
		}
		if c.Count == 0 || m.To.After(c.MaxTo) {
			c.MaxTo = m.To
		}
		c.Count++
	}
	return c, c.Count > 0, nil
}

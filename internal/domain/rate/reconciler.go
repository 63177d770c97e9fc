package rate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

// Proposal is a custom rate change an owner wants applied over a closed date
// range.
type Proposal struct {
	RoomID room.RoomID
	Kind   Kind
	Amount int
	From   time.Time
	To     time.Time
}

func (p Proposal) Validate() error {
	if p.From.IsZero() || p.To.IsZero() || p.To.Before(p.From) {
		return ErrInvalidSpan
	}
	return ValidateAmount(p.Kind, p.Amount)
}

func (p Proposal) normalize() Proposal {
	p.From = daterange.Day(p.From)
	p.To = daterange.Day(p.To)
	return p
}

// Reconciler rewrites a room's CUSTOM interval set so a proposed amount
// governs its full range without gaps or overlaps.
//
// The passes run in a fixed order; later passes assume earlier overlap shapes
// are already resolved, and each pass re-reads the store it mutates. Callers
// must hold the room's reconciliation lock for the whole call.
type Reconciler struct {
	Store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{Store: store}
}

// Apply mutates the store. After it returns, resolving any day in
// [p.From, p.To] for p.Kind yields p.Amount and the CUSTOM set is
// pairwise non-overlapping.
func (r *Reconciler) Apply(ctx context.Context, p Proposal) error {
	p = p.normalize()
	if err := p.Validate(); err != nil {
		return err
	}

	if err := r.matchFromPass(ctx, p); err != nil {
		return err
	}
	if err := r.matchToPass(ctx, p); err != nil {
		return err
	}
	covered, err := r.splitContainerPass(ctx, p)
	if err != nil {
		return err
	}
	replaced, err := r.absorbContainedPass(ctx, p)
	if err != nil {
		return err
	}
	if err := r.trimEdgesPass(ctx, p, replaced); err != nil {
		return err
	}

	if replaced || covered {
		return nil
	}
	_, err = r.Store.Save(ctx, Interval{
		ID:      uuid.NewString(),
		RoomID:  p.RoomID,
		Kind:    p.Kind,
		DayType: DayCustom,
		Amount:  p.Amount,
		From:    p.From,
		To:      p.To,
	})
	return err
}

// matchFromPass handles existing intervals starting exactly at the proposed
// from date. Amount-equal rows are dropped; different amounts survive only
// past the proposed end, shrunk to start right after it.
func (r *Reconciler) matchFromPass(ctx context.Context, p Proposal) error {
	matches, err := r.Store.FindByFrom(ctx, p.RoomID, p.Kind, DayCustom, p.From)
	if err != nil {
		return err
	}
	for _, m := range matches {
		switch {
		case m.Amount == p.Amount:
			if err := r.Store.Delete(ctx, m); err != nil {
				return err
			}
		case m.To.After(p.To):
			m.From = daterange.NextDay(p.To)
			if _, err := r.Store.Save(ctx, m); err != nil {
				return err
			}
		default:
			if err := r.Store.Delete(ctx, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// matchToPass mirrors matchFromPass on the proposed to date.
func (r *Reconciler) matchToPass(ctx context.Context, p Proposal) error {
	matches, err := r.Store.FindByTo(ctx, p.RoomID, p.Kind, DayCustom, p.To)
	if err != nil {
		return err
	}
	for _, m := range matches {
		switch {
		case m.Amount == p.Amount:
			if err := r.Store.Delete(ctx, m); err != nil {
				return err
			}
		case m.From.Before(p.From):
			m.To = daterange.PrevDay(p.From)
			if _, err := r.Store.Save(ctx, m); err != nil {
				return err
			}
		default:
			if err := r.Store.Delete(ctx, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitContainerPass handles intervals strictly containing the proposed
// range. A different amount is split into a fragment before and a fragment
// after, both keeping the original amount. A same-amount container already
// covers the range, so the final insert is suppressed for it.
func (r *Reconciler) splitContainerPass(ctx context.Context, p Proposal) (covered bool, err error) {
	existing, err := r.Store.Find(ctx, p.RoomID, p.Kind, DayCustom)
	if err != nil {
		return false, err
	}
	for _, m := range existing {
		if !m.From.Before(p.From) || !m.To.After(p.To) {
			continue
		}
		if m.Amount == p.Amount {
			covered = true
			continue
		}
		left := m
		left.To = daterange.PrevDay(p.From)
		right := Interval{
			ID:      uuid.NewString(),
			RoomID:  m.RoomID,
			Kind:    m.Kind,
			DayType: DayCustom,
			Amount:  m.Amount,
			From:    daterange.NextDay(p.To),
			To:      m.To,
		}
		if _, err := r.Store.Save(ctx, left); err != nil {
			return covered, err
		}
		if _, err := r.Store.Save(ctx, right); err != nil {
			return covered, err
		}
	}
	return covered, nil
}

// absorbContainedPass handles intervals strictly inside the proposed range.
// They are all superseded; when at least one carried a different amount the
// proposed amount is written over the full range, replacing the trailing
// insert.
func (r *Reconciler) absorbContainedPass(ctx context.Context, p Proposal) (replaced bool, err error) {
	existing, err := r.Store.Find(ctx, p.RoomID, p.Kind, DayCustom)
	if err != nil {
		return false, err
	}
	var contained []Interval
	different := false
	for _, m := range existing {
		if !m.From.After(p.From) || !m.To.Before(p.To) {
			continue
		}
		contained = append(contained, m)
		if m.Amount != p.Amount {
			different = true
		}
	}
	if len(contained) == 0 {
		return false, nil
	}
	if err := r.Store.DeleteAll(ctx, contained); err != nil {
		return false, err
	}
	if !different {
		return false, nil
	}
	_, err = r.Store.Save(ctx, Interval{
		ID:      uuid.NewString(),
		RoomID:  p.RoomID,
		Kind:    p.Kind,
		DayType: DayCustom,
		Amount:  p.Amount,
		From:    p.From,
		To:      p.To,
	})
	return err == nil, err
}

// trimEdgesPass sweeps whatever still overlaps the proposed range: partial
// edge overlaps with no exact bound match, which none of the four shapes
// above claim. Left overlappers lose their tail, right overlappers their
// head, anything fully covered is dropped.
func (r *Reconciler) trimEdgesPass(ctx context.Context, p Proposal, replaced bool) error {
	existing, err := r.Store.Find(ctx, p.RoomID, p.Kind, DayCustom)
	if err != nil {
		return err
	}
	for _, m := range existing {
		if !m.Overlaps(p.From, p.To) {
			continue
		}
		// the replacement written by absorbContainedPass
		if replaced && m.Amount == p.Amount && m.From.Equal(p.From) && m.To.Equal(p.To) {
			continue
		}
		// a same-amount container retained by splitContainerPass
		if m.Amount == p.Amount && m.From.Before(p.From) && m.To.After(p.To) {
			continue
		}
		switch {
		case m.From.Before(p.From) && m.To.After(p.To):
			// different-amount container that slipped past the split pass;
			// split it the same way
			left := m
			left.To = daterange.PrevDay(p.From)
			right := Interval{
				ID:      uuid.NewString(),
				RoomID:  m.RoomID,
				Kind:    m.Kind,
				DayType: DayCustom,
				Amount:  m.Amount,
				From:    daterange.NextDay(p.To),
				To:      m.To,
			}
			if _, err := r.Store.Save(ctx, left); err != nil {
				return err
			}
			if _, err := r.Store.Save(ctx, right); err != nil {
				return err
			}
		case m.From.Before(p.From):
			m.To = daterange.PrevDay(p.From)
			if _, err := r.Store.Save(ctx, m); err != nil {
				return err
			}
		case m.To.After(p.To):
			m.From = daterange.NextDay(p.To)
			if _, err := r.Store.Save(ctx, m); err != nil {
				return err
			}
		default:
			if err := r.Store.Delete(ctx, m); err != nil {
				return err
			}
		}
	}
	return nil
}

package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/service"
)

// Editor stages rate edits against a working copy of a pricing model.
// Nothing reaches the canonical store until Save; Reset restores the last
// committed state exactly. Previews always read a fully-materialized copy,
// never a mutation in progress.
type Editor struct {
	committed *model.PricingModel
	working   *model.PricingModel
	dirty     bool
}

// NewEditor snapshots the model as both committed baseline and working copy.
func NewEditor(m *model.PricingModel) (*Editor, error) {
	if m == nil {
		return nil, fmt.Errorf("pricing model is nil")
	}
	if m.Rates == nil {
		return nil, fmt.Errorf("pricing model %s has no rate tables to edit", m.ID)
	}
	return &Editor{
		committed: m.Clone(),
		working:   m.Clone(),
	}, nil
}

// Set stages one field update on the working copy. The update is
// all-or-nothing: a path or value error leaves the working copy untouched.
func (e *Editor) Set(path string, value float64) error {
	if err := e.working.Rates.UpdateField(path, value); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// Dirty reports whether unsaved edits are staged.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// Working returns a copy of the working model, safe to hand to the quote
// engine for previews.
func (e *Editor) Working() *model.PricingModel {
	return e.working.Clone()
}

// Committed returns a copy of the last committed model.
func (e *Editor) Committed() *model.PricingModel {
	return e.committed.Clone()
}

// Save commits the working copy as canonical, stamping UpdatedAt and
// persisting through the store.
func (e *Editor) Save(ctx context.Context, store service.Storage) (*model.PricingModel, error) {
	e.working.UpdatedAt = time.Now()
	if err := store.SavePricingModel(ctx, e.working); err != nil {
		return nil, fmt.Errorf("failed to save pricing model %s: %w", e.working.ID, err)
	}
	e.committed = e.working.Clone()
	e.dirty = false
	slog.Info("pricing model saved", "model", e.working.ID, "name", e.working.Name)
	return e.working.Clone(), nil
}

// Reset discards all staged edits, restoring the working copy to the last
// committed state.
func (e *Editor) Reset() {
	e.working = e.committed.Clone()
	e.dirty = false
}

// Package resolve runs the ordered chain of model lookups.
package resolve

import (
	"log/slog"

	"github.com/ai8future/actual-model/internal/status"
)

// Source names the tier that produced a model.
type Source string

const (
	SourceTranscript Source = "transcript"
	SourceRouter     Source = "router"
	SourcePayload    Source = "payload"
)

// Tier is one lookup in the chain. Lookup has no error result: a tier turns
// every failure into a miss.
type Tier interface {
	Name() string
	Lookup(rec *status.Record) (string, bool)
}

// Result is a resolved model and the tier that produced it.
type Result struct {
	Model  string
	Source Source
}

// PayloadTier reads the model reported in the payload itself.
type PayloadTier struct{}

// Name implements Tier.
func (PayloadTier) Name() string { return string(SourcePayload) }

// Lookup implements Tier.
func (PayloadTier) Lookup(rec *status.Record) (string, bool) {
	return rec.ReportedModel()
}

// Resolver tries its tiers in order and stops at the first hit.
type Resolver struct {
	tiers []Tier
}

// New builds a resolver over tiers, consulted in the order given.
func New(tiers ...Tier) *Resolver {
	return &Resolver{tiers: tiers}
}

// Tiers returns the names of the configured tiers, in order.
func (r *Resolver) Tiers() []string {
	names := make([]string, 0, len(r.tiers))
	for _, t := range r.tiers {
		names = append(names, t.Name())
	}
	return names
}

// Resolve returns the first model any tier yields, or false when none does.
func (r *Resolver) Resolve(rec *status.Record) (Result, bool) {
	slog.Debug("resolving model", "tiers", r.Tiers())
	for _, t := range r.tiers {
		model, ok := t.Lookup(rec)
		if !ok || model == "" {
			slog.Debug("tier missed", "tier", t.Name())
			continue
		}
		slog.Debug("model resolved", "tier", t.Name(), "model", model)
		return Result{Model: model, Source: Source(t.Name())}, true
	}
	slog.Debug("no tier resolved a model")
	return Result{}, false
}

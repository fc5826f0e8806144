// Package source defines the evidence-source contract and the call
// discipline around it: timeouts, a single retry with backoff, per-source
// rate limiting and TTL caching. Concrete connectors to real registries
// and review platforms implement Source; the engine never assumes a
// specific external API shape.
package source

import (
	"context"
	"errors"

	"vouch/internal/model"
)

// Well-known source names. The pipeline dispatches steps to sources by
// these names; the report's per-source summaries reference them too.
const (
	NameRegistry   = "registry"
	NameSearch     = "search"
	NameReviews    = "reviews"
	NameScamDB     = "scamdb"
	NamePresence   = "presence"
	NameAddress    = "address"
	NameCompliance = "compliancedb"
)

// ErrUnavailable indicates a source that is configured but cannot serve
// the query right now.
var ErrUnavailable = errors.New("evidence source unavailable")

// Query is what every source receives. The industry tag is resolved by
// the classifier before any source call.
type Query struct {
	BusinessName string
	LegalForm    model.LegalForm
	Industry     model.Industry
}

// Source is the capability contract implemented per external system.
// Fetch blocks until evidence is available, the context is done or the
// source fails; failures are returned as errors and turned into degraded
// evidence by the call wrapper, never into pipeline failures.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) (model.Evidence, error)
}

// Set is the full complement of sources a run dispatches to, keyed by
// name. Missing entries yield degraded evidence for their steps.
type Set map[string]Source

// Degraded builds the evidence envelope recorded when a source failed
// after retry or is absent from the set.
func Degraded(name string, err error) model.Evidence {
	ev := model.Evidence{Source: name, Degraded: true}
	if err != nil {
		ev.Failure = err.Error()
	}
	return ev
}

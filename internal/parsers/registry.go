// Package parsers defines the statement-parser priority chain. Vendor
// parsers with hand-written patterns register ahead of the generic
// layout-inference engine, which registers last and acts as the fallback
// when nothing vendor-specific matches.
package parsers

import (
	"context"

	"github.com/rbrtjns90/statement-organizer/internal/common"
	"github.com/rbrtjns90/statement-organizer/internal/model"
)

// StatementParser is one link in the priority chain.
type StatementParser interface {
	// Name identifies the parser, e.g. an institution name or "generic".
	Name() string

	// CanParse cheaply decides whether this parser can handle the
	// statement, given its full plain text.
	CanParse(text string) bool

	// Extract recovers transaction records from the statement's pages.
	Extract(ctx context.Context, pages []model.Page) ([]model.Transaction, error)
}

// Registry tries parsers in registration order and returns the first that
// claims the statement.
type Registry struct {
	parsers []StatementParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a parser to the chain. Order matters: register
// vendor-specific parsers first and the generic fallback last.
func (r *Registry) Register(p StatementParser) {
	r.parsers = append(r.parsers, p)
}

// Find returns the first parser whose CanParse accepts the text.
func (r *Registry) Find(text string) (StatementParser, error) {
	for _, p := range r.parsers {
		if p.CanParse(text) {
			return p, nil
		}
	}
	return nil, common.ErrNoParser
}

// Names lists the registered parsers in chain order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.parsers))
	for i, p := range r.parsers {
		names[i] = p.Name()
	}
	return names
}

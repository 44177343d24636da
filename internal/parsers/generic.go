package parsers

import (
	"context"
	"strings"

	"github.com/rbrtjns90/statement-organizer/internal/extract"
	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
	"github.com/rbrtjns90/statement-organizer/internal/layout"
	"github.com/rbrtjns90/statement-organizer/internal/model"
)

// Generic adapts the layout-inference engine to the StatementParser chain.
// It accepts anything that plausibly reads as a financial statement, so it
// must be registered last.
type Generic struct {
	engine *extract.Engine
	table  *heuristics.Table
}

// NewGeneric wraps an engine for registry use. A nil table uses the built-in
// heuristics.
func NewGeneric(engine *extract.Engine, table *heuristics.Table) *Generic {
	if table == nil {
		table = heuristics.Default()
	}
	return &Generic{engine: engine, table: table}
}

// Name implements StatementParser.
func (g *Generic) Name() string { return "generic (auto-detect)" }

// CanParse implements StatementParser.
func (g *Generic) CanParse(text string) bool {
	return extract.LooksLikeStatement(text, g.table)
}

// Extract implements StatementParser.
func (g *Generic) Extract(ctx context.Context, pages []model.Page) ([]model.Transaction, error) {
	return g.engine.ExtractPages(ctx, pages)
}

// PagesText reconstructs each page's lines and joins them into the plain
// text the CanParse chain inspects.
func PagesText(pages []model.Page) string {
	var sb strings.Builder
	for _, page := range pages {
		for _, line := range layout.ReconstructLines(page.Chars) {
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Package extract orchestrates the full layout-inference pipeline: lines are
// reconstructed from positioned characters, clustered by structural features,
// the most transaction-like cluster is selected, and a synthesized template
// pulls out individual transaction records.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/rbrtjns90/statement-organizer/internal/cluster"
	"github.com/rbrtjns90/statement-organizer/internal/feature"
	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
	"github.com/rbrtjns90/statement-organizer/internal/layout"
	"github.com/rbrtjns90/statement-organizer/internal/model"
	"github.com/rbrtjns90/statement-organizer/internal/template"
)

const (
	// defaultMaxLines bounds the work per page; lines past the cap are
	// skipped rather than processed.
	defaultMaxLines = 10000

	// defaultRepairWindow is how many lines away an orphaned amount may sit
	// from the description fragment it gets paired with.
	defaultRepairWindow = 10

	// defaultPageWidth is assumed when extracting from plain text, where no
	// real page geometry exists.
	defaultPageWidth = 612.0
)

// Config controls an Engine. The zero value is completed with defaults by
// NewEngine.
type Config struct {
	Classifier      cluster.Classifier
	Heuristics      *heuristics.Table
	MaxLinesPerPage int
	RepairWindow    int
}

// Engine runs the generic statement-extraction pipeline. It keeps no state
// between pages, so one engine may serve concurrent documents.
type Engine struct {
	classifier cluster.Classifier
	table      *heuristics.Table
	selector   *cluster.Selector
	maxLines   int
	window     int
}

// NewEngine creates an engine, filling unset config fields with the standard
// seeded k-means classifier and built-in heuristics.
func NewEngine(cfg Config) *Engine {
	if cfg.Classifier == nil {
		cfg.Classifier = cluster.NewKMeans()
	}
	if cfg.Heuristics == nil {
		cfg.Heuristics = heuristics.Default()
	}
	if cfg.MaxLinesPerPage <= 0 {
		cfg.MaxLinesPerPage = defaultMaxLines
	}
	if cfg.RepairWindow <= 0 {
		cfg.RepairWindow = defaultRepairWindow
	}
	return &Engine{
		classifier: cfg.Classifier,
		table:      cfg.Heuristics,
		selector:   cluster.NewSelector(cfg.Heuristics),
		maxLines:   cfg.MaxLinesPerPage,
		window:     cfg.RepairWindow,
	}
}

// ExtractPages runs the full pipeline over every page and returns the
// combined transaction list in page order. Pages are independent and are
// processed concurrently; a failure inside one page is logged and
// contributes zero records without aborting the document.
func (e *Engine) ExtractPages(ctx context.Context, pages []model.Page) ([]model.Transaction, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	results := make([][]model.Transaction, len(pages))
	var wg sync.WaitGroup

	for i, page := range pages {
		wg.Add(1)
		go func(i int, page model.Page) {
			defer wg.Done()
			results[i] = e.extractPageSafe(ctx, page)
		}(i, page)
	}
	wg.Wait()

	var all []model.Transaction
	for _, txns := range results {
		all = append(all, txns...)
	}

	slog.Info("extraction complete",
		"pages", len(pages),
		"transactions", len(all))
	return all, nil
}

// ExtractText runs the pipeline over pre-extracted plain text, one synthetic
// line per text line. Positional features are unavailable in this mode, but
// the shape features still drive clustering and template synthesis.
func (e *Engine) ExtractText(ctx context.Context, text string) ([]model.Transaction, error) {
	var lines []layout.Line
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, layout.Line{Text: trimmed, Y: float64(i)})
	}

	page := model.Page{Number: 1, Width: defaultPageWidth}
	txns := e.extractLinesSafe(ctx, page, lines)
	return txns, nil
}

// extractPageSafe recovers from any failure inside a single page so the rest
// of the document still extracts.
func (e *Engine) extractPageSafe(ctx context.Context, page model.Page) []model.Transaction {
	lines := layout.ReconstructLines(page.Chars)
	return e.extractLinesSafe(ctx, page, lines)
}

func (e *Engine) extractLinesSafe(ctx context.Context, page model.Page, lines []layout.Line) (txns []model.Transaction) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("page extraction failed",
				"page", page.Number,
				"panic", fmt.Sprintf("%v", r))
			txns = nil
		}
	}()

	if ctx.Err() != nil {
		return nil
	}

	if len(lines) > e.maxLines {
		slog.Warn("page exceeds line cap, truncating",
			"page", page.Number,
			"lines", len(lines),
			"cap", e.maxLines)
		lines = lines[:e.maxLines]
	}
	if len(lines) == 0 {
		return nil
	}

	vectors := make([]feature.Vector, len(lines))
	for i, line := range lines {
		vectors[i] = feature.Extract(line, page.Width)
	}

	labels := e.classifier.Classify(vectors)
	winner, scores := e.selector.Select(lines, vectors, labels)

	slog.Debug("cluster selection",
		"page", page.Number,
		"lines", len(lines),
		"clusters", len(scores),
		"winner", winner)

	var memberIdx []int
	var memberTexts []string
	for i, label := range labels {
		if label == winner {
			memberIdx = append(memberIdx, i)
			memberTexts = append(memberTexts, lines[i].Text)
		}
	}
	if len(memberIdx) == 0 {
		return nil
	}

	tmpl := template.Synthesize(memberTexts, e.table)
	re, err := tmpl.Build()
	if err != nil {
		slog.Error("template compilation failed",
			"page", page.Number,
			"error", err)
		return nil
	}

	yearHint := findYearHint(lines)

	emitted := make(map[int]bool)
	txns = e.primaryPass(re, lines, memberIdx, page.Number, yearHint, emitted)
	txns = append(txns, e.repairPass(lines, page.Number, yearHint, emitted)...)
	return txns
}

// primaryPass applies the synthesized template to every line of the winning
// cluster. emitted collects the line indices that produced a record so the
// repair pass never re-emits them.
func (e *Engine) primaryPass(re *regexp.Regexp, lines []layout.Line, memberIdx []int, pageNum, yearHint int, emitted map[int]bool) []model.Transaction {
	var txns []model.Transaction

	for _, i := range memberIdx {
		text := lines[i].Text
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		desc := strings.TrimSpace(m[1])
		amountStr := m[2]
		var balanceStr string
		if len(m) > 3 {
			balanceStr = m[3]
		}

		amount, ok := model.ParseAmount(amountStr)
		if !ok {
			continue
		}
		if desc == "" {
			continue
		}

		// Final safety net: drop anything an earlier stage let through
		// that still reads like summary or boilerplate.
		if e.table.IsNonTransaction(desc) || e.table.IsNonTransaction(text) {
			continue
		}

		// The date is re-located in the raw line rather than taken from a
		// capture group; some layouts keep it outside the matched columns.
		txn := model.Transaction{
			Description: desc,
			Amount:      amount,
			Raw:         text,
			Page:        pageNum,
		}
		if dateStr := feature.FirstDateShape(text); dateStr != "" {
			txn.DateText = dateStr
			if parsed, ok := model.ParseDate(dateStr, yearHint); ok {
				txn.Date = parsed
			}
		}
		if balanceStr != "" {
			if balance, ok := model.ParseAmount(balanceStr); ok {
				txn.Balance = &balance
			}
		}
		txn.Hash = txn.GenerateHash()

		emitted[i] = true
		txns = append(txns, txn)
	}

	return txns
}

// findYearHint looks for a fully qualified year anywhere on the page, used
// to complete year-less transaction dates (statements often print the year
// only in the header).
func findYearHint(lines []layout.Line) int {
	for _, line := range lines {
		for _, shape := range feature.DateShapes(line.Text) {
			if year := fourDigitYear(shape); year > 0 {
				return year
			}
		}
	}
	return 0
}

var yearRe = regexp.MustCompile(`(?:19|20)\d{2}`)

func fourDigitYear(s string) int {
	m := yearRe.FindString(s)
	if m == "" {
		return 0
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return year
}

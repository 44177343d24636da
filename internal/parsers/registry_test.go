package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbrtjns90/statement-organizer/internal/common"
	"github.com/rbrtjns90/statement-organizer/internal/extract"
	"github.com/rbrtjns90/statement-organizer/internal/model"
)

type stubParser struct {
	name    string
	accepts bool
}

func (s *stubParser) Name() string              { return s.name }
func (s *stubParser) CanParse(text string) bool { return s.accepts }
func (s *stubParser) Extract(ctx context.Context, pages []model.Page) ([]model.Transaction, error) {
	return nil, nil
}

func TestRegistry_FindRespectsOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubParser{name: "first", accepts: false})
	registry.Register(&stubParser{name: "second", accepts: true})
	registry.Register(&stubParser{name: "third", accepts: true})

	parser, err := registry.Find("anything")
	require.NoError(t, err)
	assert.Equal(t, "second", parser.Name())
}

func TestRegistry_FindNoMatch(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubParser{name: "picky", accepts: false})

	_, err := registry.Find("anything")
	assert.ErrorIs(t, err, common.ErrNoParser)
}

func TestRegistry_FindEmpty(t *testing.T) {
	_, err := NewRegistry().Find("anything")
	assert.ErrorIs(t, err, common.ErrNoParser)
}

func TestRegistry_Names(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubParser{name: "alpha"})
	registry.Register(&stubParser{name: "beta"})

	assert.Equal(t, []string{"alpha", "beta"}, registry.Names())
}

func TestGeneric_CanParse(t *testing.T) {
	generic := NewGeneric(extract.NewEngine(extract.Config{}), nil)

	statement := "ACME BANK STATEMENT\nAccount Balance\n06/01 COFFEE SHOP 4.50"
	assert.True(t, generic.CanParse(statement))
	assert.False(t, generic.CanParse("an unrelated memo about lunch plans"))
	assert.Equal(t, "generic (auto-detect)", generic.Name())
}

func TestPagesText(t *testing.T) {
	page := model.Page{Number: 1, Width: 612}
	x := 36.0
	for _, r := range "HELLO" {
		page.Chars = append(page.Chars, model.Char{
			Text: string(r),
			X0:   x, X1: x + 6,
			Top: 72, Bottom: 82,
			Size: 10,
		})
		x += 6
	}

	assert.Equal(t, "HELLO\n", PagesText([]model.Page{page}))
	assert.Equal(t, "", PagesText(nil))
}

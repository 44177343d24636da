package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("ORGANIZER_TEST_DIR", "/data/statements")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain path untouched", input: "/var/db/organizer.db", want: "/var/db/organizer.db"},
		{name: "tilde prefix", input: "~/statements.db", want: filepath.Join(home, "statements.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "env var", input: "$ORGANIZER_TEST_DIR/june.csv", want: "/data/statements/june.csv"},
		{name: "tilde mid-path untouched", input: "/tmp/~backup", want: "/tmp/~backup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPath(tt.input))
		})
	}
}

func TestLoadPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	dump := `[{"width": 612, "chars": [{"text": "A", "x0": 10, "x1": 15, "top": 72, "bottom": 82, "size": 10}]}]`
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o600))

	pages, err := loadPages(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	// Page numbers absent from the dump are filled in positionally.
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 612.0, pages[0].Width)
	require.Len(t, pages[0].Chars, 1)
	assert.Equal(t, "A", pages[0].Chars[0].Text)
}

func TestLoadPages_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := loadPages(path)
	assert.Error(t, err)
}

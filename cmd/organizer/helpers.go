package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rbrtjns90/statement-organizer/internal/common"
	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
	"github.com/rbrtjns90/statement-organizer/internal/model"
)

// expandPath resolves a leading ~ to the home directory and expands $VAR
// style environment variables in user-supplied paths.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// loadHeuristics returns the configured heuristics table, falling back to
// the built-in defaults.
func loadHeuristics() (*heuristics.Table, error) {
	path := viper.GetString("heuristics")
	if path == "" {
		return heuristics.Default(), nil
	}
	table, err := heuristics.Load(expandPath(path))
	if err != nil {
		return nil, err
	}
	return table, nil
}

// loadPages reads a positioned-character dump: a JSON array of pages, each
// with a width and a list of chars, as produced by the page-extraction
// collaborator.
func loadPages(path string) ([]model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pages []model.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("%s is not a positioned-character page dump", path), err)
	}

	for i := range pages {
		if pages[i].Number == 0 {
			pages[i].Number = i + 1
		}
	}
	return pages, nil
}

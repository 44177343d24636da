package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbrtjns90/statement-organizer/internal/extract"
	"github.com/rbrtjns90/statement-organizer/internal/parsers"
)

func banksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List the registered statement parsers",
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := loadHeuristics()
			if err != nil {
				return err
			}
			registry := parsers.NewRegistry()
			registry.Register(parsers.NewGeneric(extract.NewEngine(extract.Config{Heuristics: table}), table))

			for i, name := range registry.Names() {
				fmt.Printf("%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbrtjns90/statement-organizer/internal/extract"
	"github.com/rbrtjns90/statement-organizer/internal/parsers"
)

func detectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Check whether a file plausibly is a financial statement",
		Long: `Run the cheap pre-check (keyword and shape density) against a statement's
plain text or positioned-character dump, without running the full pipeline.`,
		Args: cobra.ExactArgs(1),
		RunE: runDetect,
	}
	cmd.Flags().Bool("text", false, "treat the input as plain text")
	return cmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	textMode, _ := cmd.Flags().GetBool("text")

	table, err := loadHeuristics()
	if err != nil {
		return err
	}

	var text string
	if textMode {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		text = string(data)
	} else {
		pages, err := loadPages(args[0])
		if err != nil {
			return err
		}
		text = parsers.PagesText(pages)
	}

	if extract.LooksLikeStatement(text, table) {
		fmt.Println("looks like a financial statement")
		return nil
	}
	fmt.Println("does not look like a financial statement")
	return nil
}

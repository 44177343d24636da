package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbrtjns90/statement-organizer/internal/common"
	"github.com/rbrtjns90/statement-organizer/internal/export"
	"github.com/rbrtjns90/statement-organizer/internal/extract"
	"github.com/rbrtjns90/statement-organizer/internal/heuristics"
	"github.com/rbrtjns90/statement-organizer/internal/model"
	"github.com/rbrtjns90/statement-organizer/internal/parsers"
	"github.com/rbrtjns90/statement-organizer/internal/storage"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract transactions from a statement",
		Long: `Extract transaction records from a statement's positioned-character dump
(JSON pages of chars) or, with --text, from pre-extracted plain text.

Examples:
  # Extract from a character dump and print a table
  organizer extract statement.chars.json

  # Plain-text mode
  organizer extract --text statement.txt

  # Write results to CSV and a local database
  organizer extract statement.chars.json --csv out.csv --db ~/.local/share/organizer/txns.db`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Bool("text", false, "treat the input as plain text, one statement line per text line")
	cmd.Flags().String("csv", "", "write results to this CSV file")
	cmd.Flags().String("db", "", "also save results to this SQLite database")
	cmd.Flags().Bool("force", false, "skip the statement pre-check")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	textMode, _ := cmd.Flags().GetBool("text")
	csvPath, _ := cmd.Flags().GetString("csv")
	dbPath, _ := cmd.Flags().GetString("db")
	force, _ := cmd.Flags().GetBool("force")

	table, err := loadHeuristics()
	if err != nil {
		return err
	}
	engine := extract.NewEngine(extract.Config{Heuristics: table})

	registry := parsers.NewRegistry()
	registry.Register(parsers.NewGeneric(engine, table))

	ctx := cmd.Context()

	var txns []model.Transaction
	if textMode {
		txns, err = extractFromText(ctx, engine, table, args[0], force)
	} else {
		txns, err = extractFromPages(ctx, registry, engine, args[0], force)
	}
	if err != nil {
		return err
	}

	if len(txns) == 0 {
		slog.Warn("no transactions recovered", "file", args[0])
	}

	if csvPath != "" {
		if err := export.WriteCSVFile(expandPath(csvPath), txns); err != nil {
			return err
		}
		slog.Info("wrote CSV", "file", csvPath, "transactions", len(txns))
	}

	if dbPath != "" {
		store, err := storage.NewSQLiteStorage(expandPath(dbPath))
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if err := store.SaveTransactions(ctx, txns); err != nil {
			return err
		}
		slog.Info("saved to database", "db", dbPath, "transactions", len(txns))
	}

	if csvPath == "" {
		printTable(txns)
	}
	return nil
}

func extractFromText(ctx context.Context, engine *extract.Engine, table *heuristics.Table, path string, force bool) ([]model.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(data)

	if !force && !extract.LooksLikeStatement(text, table) {
		return nil, common.NewUserError(
			fmt.Sprintf("%s does not look like a financial statement (use --force to override)", path), nil)
	}
	return engine.ExtractText(ctx, text)
}

func extractFromPages(ctx context.Context, registry *parsers.Registry, engine *extract.Engine, path string, force bool) ([]model.Transaction, error) {
	pages, err := loadPages(path)
	if err != nil {
		return nil, err
	}

	text := parsers.PagesText(pages)
	parser, err := registry.Find(text)
	if err != nil {
		if !force {
			return nil, fmt.Errorf("%s: %w (use --force to run the generic engine anyway)", path, err)
		}
		slog.Warn("pre-check rejected statement, forcing generic extraction", "file", path)
		return engine.ExtractPages(ctx, pages)
	}

	slog.Info("selected parser", "parser", parser.Name(), "pages", len(pages))
	return parser.Extract(ctx, pages)
}

func printTable(txns []model.Transaction) {
	fmt.Printf("%-6s %-12s %-50s %12s %12s\n", "PAGE", "DATE", "DESCRIPTION", "AMOUNT", "BALANCE")
	for _, t := range txns {
		date := t.DateText
		if !t.Date.IsZero() {
			date = t.Date.Format("2006-01-02")
		}
		desc := t.Description
		if len(desc) > 50 {
			desc = desc[:47] + "..."
		}
		balance := ""
		if t.Balance != nil {
			balance = t.Balance.StringFixed(2)
		}
		fmt.Printf("%-6d %-12s %-50s %12s %12s\n", t.Page, date, desc, t.Amount.StringFixed(2), balance)
	}
	fmt.Printf("\n%d transaction(s)\n", len(txns))
}

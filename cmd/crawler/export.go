package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/banweb/crawler/db"
	"github.com/banweb/crawler/export"
	"github.com/banweb/crawler/uniqueness"
)

func exportCommand() *cobra.Command {
	var termCode string
	var outPath string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export a stored term from the database as a term dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if termCode == "" {
				return errors.New("--term is required")
			}
			if outPath == "" {
				return errors.New("--out is required")
			}

			connectionString := os.Getenv("DATABASE_CONNECTION_STRING")
			if connectionString == "" {
				return errors.New("DATABASE_CONNECTION_STRING is required")
			}

			database, err := db.Connect(context.Background(), connectionString)
			if err != nil {
				return err
			}
			defer database.Close()

			term, err := database.SelectTerm(termCode)
			if err != nil {
				return err
			}

			tiers, err := uniqueness.Categorize(term)
			if err != nil {
				return err
			}

			if err := export.WriteTerm(term, tiers, outPath); err != nil {
				return err
			}
			logger.Info("wrote term dataset",
				zap.String("term", termCode),
				zap.String("path", outPath),
				zap.Int("courses", len(term.Courses)))

			return nil
		},
	}

	command.Flags().StringVar(&termCode, "term", "", "code of a stored term, e.g. 202502")
	command.Flags().StringVar(&outPath, "out", "", "path for the term dataset JSON")
	return command
}

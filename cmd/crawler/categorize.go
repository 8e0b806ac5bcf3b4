package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/banweb/crawler/export"
	"github.com/banweb/crawler/uniqueness"
)

func categorizeCommand() *cobra.Command {
	var inPath string
	var write bool

	command := &cobra.Command{
		Use:   "categorize",
		Short: "Recompute consistency tiers for a previously exported term dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" {
				return errors.New("--in is required")
			}

			term, err := export.ReadTerm(inPath)
			if err != nil {
				return err
			}

			tiers, err := uniqueness.Categorize(term)
			if err != nil {
				return err
			}

			for _, id := range term.CourseIDs() {
				if tiers[id] != uniqueness.TierUniform {
					fmt.Printf("%v\t%v\n", id, tiers[id])
				}
			}
			logTierCounts(tiers)

			if write {
				if err := export.WriteTerm(term, tiers, inPath); err != nil {
					return err
				}
				logger.Info("rewrote term dataset", zap.String("path", inPath))
			}

			return nil
		},
	}

	command.Flags().StringVar(&inPath, "in", "", "path of an exported term dataset")
	command.Flags().BoolVar(&write, "write", false, "rewrite the dataset with the recomputed tiers")
	return command
}

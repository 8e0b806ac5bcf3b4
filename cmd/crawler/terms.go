package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/banweb/crawler/catalog"
	"github.com/banweb/crawler/db"
	"github.com/banweb/crawler/oscar"
)

func termsCommand() *cobra.Command {
	var stored bool

	command := &cobra.Command{
		Use:   "terms",
		Short: "List the terms the schedule system offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stored {
				return listStoredTerms()
			}

			client := oscar.Client{BaseURL: baseURL()}

			terms, err := client.ScrapeTerms()
			if err != nil {
				return err
			}
			printTerms(terms)

			if connectionString := os.Getenv("DATABASE_CONNECTION_STRING"); connectionString != "" {
				database, err := db.Connect(context.Background(), connectionString)
				if err != nil {
					return err
				}
				defer database.Close()

				if err := database.InsertTerms(terms); err != nil {
					return err
				}
			}

			return nil
		},
	}

	command.Flags().BoolVar(&stored, "stored", false, "list terms already stored in the database instead of scraping")
	return command
}

func listStoredTerms() error {
	connectionString := os.Getenv("DATABASE_CONNECTION_STRING")
	if connectionString == "" {
		return errors.New("DATABASE_CONNECTION_STRING is required with --stored")
	}

	database, err := db.Connect(context.Background(), connectionString)
	if err != nil {
		return err
	}
	defer database.Close()

	terms, err := database.ListTerms()
	if err != nil {
		return err
	}
	printTerms(terms)

	return nil
}

func printTerms(terms []catalog.Term) {
	for _, term := range terms {
		fmt.Printf("%v\t%v\n", term.Code, term.Name)
	}
}

package main

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/banweb/crawler/catalog"
	"github.com/banweb/crawler/db"
	"github.com/banweb/crawler/export"
	"github.com/banweb/crawler/oscar"
	"github.com/banweb/crawler/prereq"
	"github.com/banweb/crawler/uniqueness"
)

// subjectFetchConcurrency caps concurrent subject listing requests.
const subjectFetchConcurrency = 8

func crawlCommand() *cobra.Command {
	var termCode string
	var outPath string
	var subjectCodes []string

	command := &cobra.Command{
		Use:   "crawl",
		Short: "Scrape a term, compile prerequisites, and categorize courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if termCode == "" {
				return errors.New("--term is required")
			}

			client := oscar.Client{BaseURL: baseURL()}

			term, err := scrapeTerm(client, termCode, subjectCodes)
			if err != nil {
				return err
			}
			logger.Info("scraped term", zap.String("term", termCode), zap.Int("courses", len(term.Courses)))

			texts := client.ScrapePrerequisiteTexts(term, logger)
			compiled := compileTerm(term, texts)
			attached := catalog.AttachPrerequisites(term, compiled, logger)
			logger.Info("attached prerequisites", zap.Int("sections", attached))

			tiers, err := uniqueness.Categorize(term)
			if err != nil {
				// Only reachable through a pipeline-ordering bug, never
				// through bad input.
				logger.Fatal("categorization contract violated", zap.Error(err))
			}
			logTierCounts(tiers)

			if outPath != "" {
				if err := export.WriteTerm(term, tiers, outPath); err != nil {
					return err
				}
				logger.Info("wrote term dataset", zap.String("path", outPath))
			}

			if connectionString := os.Getenv("DATABASE_CONNECTION_STRING"); connectionString != "" {
				database, err := db.Connect(context.Background(), connectionString)
				if err != nil {
					return err
				}
				defer database.Close()

				if err := database.InsertTerm(term, tiers); err != nil {
					return err
				}
				logger.Info("stored term", zap.String("term", termCode))
			}

			return nil
		},
	}

	command.Flags().StringVar(&termCode, "term", "", "term code to crawl, e.g. 202502")
	command.Flags().StringVar(&outPath, "out", "", "path for the term dataset JSON")
	command.Flags().StringSliceVar(&subjectCodes, "subject", nil, "restrict the crawl to these subject codes")
	return command
}

func scrapeTerm(client oscar.Client, termCode string, subjectCodes []string) (*catalog.Term, error) {
	if len(subjectCodes) == 0 {
		subjects, err := client.ScrapeSubjects(termCode)
		if err != nil {
			return nil, err
		}
		for _, subject := range subjects {
			subjectCodes = append(subjectCodes, subject.Code)
		}
	}

	term := &catalog.Term{Code: termCode, Courses: make(map[catalog.CourseID]*catalog.Course)}
	var coursesMutex sync.Mutex

	group := errgroup.Group{}
	group.SetLimit(subjectFetchConcurrency)
	for _, subjectCode := range subjectCodes {
		code := subjectCode

		group.Go(func() error {
			courses, err := client.ScrapeSubjectSections(termCode, code, logger)
			if err != nil {
				logger.Warn("unable to scrape subject sections",
					zap.String("term", termCode),
					zap.String("subject", code),
					zap.Error(err))
				return nil
			}

			coursesMutex.Lock()
			for id, course := range courses {
				term.Courses[id] = course
			}
			coursesMutex.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return term, nil
}

// compileTerm compiles each section's prerequisite text into canonical
// form, keyed by course reference number. A section whose text could not
// be scraped compiles to "no prerequisites" so one bad page never blocks
// the batch.
func compileTerm(term *catalog.Term, texts map[string]string) map[string]catalog.Prerequisites {
	compiled := make(map[string]catalog.Prerequisites)

	for _, id := range term.CourseIDs() {
		course := term.Courses[id]
		for _, label := range course.SectionLabels() {
			section := course.Sections[label]

			prerequisites, issues := prereq.Compile(course.ID, texts[section.CRN])
			for _, issue := range issues {
				if issue.Kind == prereq.IssueSyntax {
					logger.Warn("prerequisite syntax error",
						zap.String("course", string(issue.Course)),
						zap.Int("pos", issue.Pos),
						zap.String("message", issue.Message))
				} else {
					logger.Debug("prerequisite lexical error",
						zap.String("course", string(issue.Course)),
						zap.Int("pos", issue.Pos),
						zap.String("message", issue.Message))
				}
			}

			compiled[section.CRN] = prerequisites
		}
	}

	return compiled
}

func logTierCounts(tiers map[catalog.CourseID]uniqueness.Tier) {
	counts := make(map[uniqueness.Tier]int)
	for _, tier := range tiers {
		counts[tier]++
	}
	logger.Info("categorized courses",
		zap.Int("uniform", counts[uniqueness.TierUniform]),
		zap.Int("split", counts[uniqueness.TierSplit]),
		zap.Int("instructorSplit", counts[uniqueness.TierInstructorSplit]))
}

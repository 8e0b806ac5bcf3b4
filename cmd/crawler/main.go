package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultBaseURL = "https://oscar.gatech.edu/pls/bprod"

var logger *zap.Logger

func main() {
	_ = godotenv.Load()

	config := zap.NewProductionConfig()
	if os.Getenv("CRAWLER_DEBUG") != "" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := rootCommand().Execute(); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "crawler",
		Short:         "Turn the registrar's class schedule into a normalized term dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(termsCommand(), crawlCommand(), categorizeCommand(), exportCommand())
	return root
}

func baseURL() string {
	if base := os.Getenv("BANWEB_BASE_URL"); base != "" {
		return base
	}
	return defaultBaseURL
}

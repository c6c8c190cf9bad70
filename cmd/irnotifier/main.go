package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"IRNotifier/internal/app"
	"IRNotifier/internal/config"
	"IRNotifier/internal/domain"
	"IRNotifier/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "irnotifier",
		Short:         "Scores financial disclosures for market impact and notifies on significant ones",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newScoreCmd(), newGenerateCmd(), newWatchCmd())
	return root
}

func buildApp(ctx context.Context) (*app.Application, error) {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	return app.New(ctx, cfg, logger)
}

func newScoreCmd() *cobra.Command {
	var (
		text    string
		title   string
		symbol  string
		file    string
		rawURL  string
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one disclosure (or a CSV batch) and decide on notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			application, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			switch {
			case csvPath != "":
				docs, err := application.Reader().FromCSV(csvPath)
				if err != nil {
					return err
				}
				scored, err := application.Pipeline().ProcessBatch(ctx, docs)
				if err != nil {
					return err
				}
				fmt.Printf("batch: %d of %d documents scored\n", scored, len(docs))
				return nil

			case file != "":
				doc, err := application.Reader().FromFile(file)
				if err != nil {
					return err
				}
				printDecision(ctx, application, doc)
				return nil

			case rawURL != "":
				doc, err := application.Reader().FromURL(ctx, rawURL)
				if err != nil {
					return err
				}
				printDecision(ctx, application, doc)
				return nil

			case text != "":
				doc := application.Reader().FromText(text, title, symbol)
				printDecision(ctx, application, doc)
				return nil

			default:
				return fmt.Errorf("one of --text, --file, --url, or --csv is required")
			}
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "disclosure body text")
	cmd.Flags().StringVar(&title, "title", "", "disclosure title (with --text)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "securities code (with --text)")
	cmd.Flags().StringVar(&file, "file", "", "disclosure file path")
	cmd.Flags().StringVar(&rawURL, "url", "", "disclosure page URL")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV batch path (content column required)")
	return cmd
}

func printDecision(ctx context.Context, application *app.Application, doc domain.Document) {
	result, outcome := application.Pipeline().ProcessDocument(ctx, doc)

	fmt.Printf("score: %d (dictionary: %s)\n", result.Score, result.Provenance)
	for _, kw := range result.TopContributions(5) {
		fmt.Printf("  %s: %d\n", kw.Term, kw.Score)
	}
	fmt.Printf("notified: %t (%s)\n", outcome.Notified, outcome.Reason)
}

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the dictionary from configured corpus sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			application, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Pipeline().RegenerateDictionary(ctx); err != nil {
				return fmt.Errorf("generate dictionary: %w", err)
			}
			fmt.Println("dictionary generated")
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the configured directory and score every new disclosure file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			application, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Watch(ctx)
		},
	}
}

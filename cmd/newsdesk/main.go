package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/scraper"
	"newsdesk/internal/server"
)

func main() {
	// Optional; real environments set variables directly
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "newsdesk",
		Short:         "News aggregation site: scrapes sources and serves the front page",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), scrapeCmd(), createdbCmd())

	if err := root.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()
			log.Println("Connected to database")

			sc := scraper.New(db, nil, nil, cfg.ScrapeContent)
			srv := server.New(db, sc, cfg)

			addr := fmt.Sprintf(":%d", cfg.Port)
			log.Printf("Server starting on http://localhost%s", addr)
			return srv.Start(addr)
		},
	}
}

func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Run one scrape pass over all sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			sc := scraper.New(db, nil, nil, cfg.ScrapeContent)
			stats := sc.Run(ctx)
			log.Printf("Done: %d new, %d skipped, %d failed", stats.New, stats.Skipped, stats.Failed)
			return nil
		},
	}
}

func createdbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "createdb",
		Short: "Create the configured database if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := database.EnsureDatabase(ctx, cfg.DatabaseURL); err != nil {
				return fmt.Errorf("database creation failed: %w (check that the server is running and the credentials are correct)", err)
			}

			// Connecting also ensures the schema.
			db, err := database.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			db.Close()

			log.Println("Database created successfully or already exists")
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crawlfrontier/frontier/internal/config"
	"github.com/crawlfrontier/frontier/internal/frontier"
	"github.com/crawlfrontier/frontier/internal/logger"
	"github.com/crawlfrontier/frontier/internal/robots"
	"github.com/crawlfrontier/frontier/internal/store/postgres"
)

// cfgFile holds an explicit config file path set via --config.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "frontierctl",
	Short: "Inspect and operate a crawl frontier",
	Long:  `frontierctl submits job configurations and inspects job, site, and page state in a running frontier's store.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command with a fresh background context.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults to environment variables)")
	// Configuration is loaded after flag parsing so that --config is seen.
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		if err := initConfig(); err != nil {
			return fmt.Errorf("initialize configuration: %w", err)
		}
		return nil
	}
	rootCmd.AddCommand(newJobCommand())
	rootCmd.AddCommand(newSiteCommand())
	rootCmd.AddCommand(newPageCommand())
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}
	return config.InitializeViper()
}

// deps bundles the dependencies every subcommand needs to reach the
// frontier: a logger, a store-backed Frontier, and a robots checker for
// commands that queue new pages.
type deps struct {
	log     logger.Interface
	fr      *frontier.Frontier
	checker robots.Checker
	close   func()
}

func newDeps() (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logger.Level),
		Encoding:    cfg.Logger.Encoding,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	db, err := postgres.Open(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	st := postgres.New(db)
	checker := robots.NewHTTPChecker(http.DefaultClient, cfg.App.Name+"/"+cfg.App.Version, 0)
	fr := frontier.New(st, checker, log)

	return &deps{
		log:     log,
		fr:      fr,
		checker: checker,
		close:   func() { closeDB(db) },
	}, nil
}

func closeDB(db *sqlx.DB) {
	_ = db.Close()
}

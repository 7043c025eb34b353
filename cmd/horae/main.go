package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/horae/internal/artifact"
	"github.com/alexanderramin/horae/internal/cli"
	"github.com/alexanderramin/horae/internal/config"
	"github.com/alexanderramin/horae/internal/db"
	"github.com/alexanderramin/horae/internal/editor"
	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The --config flag is resolved before cobra so configuration can
	// shape the command tree's wiring.
	var configPath string
	fs := pflag.NewFlagSet("horae", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringVar(&configPath, "config", "", "Path to a config file")
	fs.Usage = func() {}
	_ = fs.Parse(os.Args[1:])

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("finding working directory: %w", err)
	}

	cfg, err := config.Load(workDir, configPath)
	if err != nil {
		return err
	}

	// Select the artifact store: remote when a store URL is
	// configured, the local SQLite store otherwise.
	var store artifact.Store
	if cfg.StoreURL != "" {
		store = artifact.NewHTTPStore(artifact.HTTPConfig{
			BaseURL:   cfg.StoreURL,
			AuthToken: cfg.AuthToken,
		})
	} else {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store = artifact.NewSQLiteStore(database)
	}

	app := &cli.App{
		Config: cfg,
		Store:  store,
		Bounds: boundsFromConfig(cfg),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.PersistentFlags().String("config", "", "Path to a config file")
	return rootCmd.Execute()
}

// boundsFromConfig turns the configured project dates into editor
// bounds. Dates were validated at config load.
func boundsFromConfig(cfg config.Config) *editor.Bounds {
	if cfg.ProjectStart == "" && cfg.ProjectFinish == "" {
		return nil
	}
	var bounds editor.Bounds
	if start, ok := timegrid.ParseDate(cfg.ProjectStart); ok {
		bounds.Start = start
	}
	if finish, ok := timegrid.ParseDate(cfg.ProjectFinish); ok {
		bounds.Finish = &finish
	}
	return &bounds
}

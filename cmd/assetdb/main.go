package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"assetdb/config"
	"assetdb/internal/db"
	"assetdb/internal/hardware"
	"assetdb/internal/logs"
	"assetdb/internal/user"
	"assetdb/server"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	configFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "assetdb",
	Short: "Data-center asset inventory API",
	Long: `assetdb tracks hardware, racks, sites, switches, network interfaces,
clusters and projects behind a JWT-protected REST API.

Without a subcommand it starts the HTTP server.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"assetdb version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml/json/toml/env); environment wins")

	userCreateCmd.Flags().String("username", "", "login name")
	userCreateCmd.Flags().String("password", "", "password")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)

	exportCmd.Flags().StringP("out", "o", "", "output file (default hardware-report-<millis>.xlsx)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(exportCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	var app server.App
	if err := app.Initialize(cfg); err != nil {
		return err
	}
	return app.Run()
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close(d)
		fmt.Println("✓ Schema is up to date")
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a login account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		d, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close(d)

		u, err := user.NewService(user.NewRepo(d)).Create(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		fmt.Printf("✓ User %s created (id=%d)\n", u.Username, u.ID)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the hardware report as an xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = hardware.ReportFileName(time.Now().UnixMilli())
		}

		d, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close(d)

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		svc := hardware.NewService(hardware.NewRepo(d))
		if err := svc.Export(cmd.Context(), f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("✓ Report written to %s\n", out)
		return nil
	},
}

// openDB подключается и мигрирует схему для служебных команд.
func openDB() (*gorm.DB, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logs.Init(logs.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, File: cfg.Logging.File})

	d, err := db.Connect(context.Background(), cfg.Database.Driver, cfg.Database.DSN, db.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		LogLevel:     cfg.Logging.Level,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(d); err != nil {
		_ = db.Close(d)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

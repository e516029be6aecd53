package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheetcal/sheetcal/internal/app"
	"github.com/sheetcal/sheetcal/internal/config"
	"github.com/sheetcal/sheetcal/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config/application.yaml"

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "sheetcal",
		Short:         "Telegram calendar bot backed by Google Sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply session store migrations to Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return database.Migrate(cmd.Context(), cfg.Database)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	closeLog := app.ConfigureLogOutput(cfg.Log)
	defer closeLog()

	application, err := app.NewApplication(ctx, cfg)
	if err != nil {
		log.Errorf("failed to initialize application: %v", err)
		return err
	}
	return application.Run(ctx)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/freshmart/admin-console/internal/activities"
	"github.com/freshmart/admin-console/internal/catalog"
	"github.com/freshmart/admin-console/internal/chat"
	"github.com/freshmart/admin-console/internal/media"
	"github.com/freshmart/admin-console/internal/stores"
	"github.com/freshmart/admin-console/internal/users"
	"github.com/freshmart/admin-console/pkg/api"
	"github.com/freshmart/admin-console/pkg/config"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/freshmart/admin-console/pkg/logger"
	"github.com/freshmart/admin-console/pkg/metrics"
)

// app holds the wired services every subcommand shares. It is built once in
// the root command's PersistentPreRunE.
type app struct {
	cfg        *config.Config
	logg       *logger.Logger
	registry   *prometheus.Registry
	client     *api.Client
	catalog    *catalog.Service
	stores     *stores.Service
	activities *activities.Service
	users      *users.Service
	chat       *chat.Service
	uploader   *media.Uploader
}

var cli *app

var rootCmd = &cobra.Command{
	Use:           "console",
	Short:         "FreshMart admin console",
	Long:          "Command-line admin console for the FreshMart storefront backend.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		built, err := buildApp()
		if err != nil {
			return err
		}
		cli = built
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(geocodeCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(chatCmd)
}

func buildApp() (*app, error) {
	logg := logger.New(logger.Options{ServiceName: "console"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logg = logger.New(logger.Options{
		ServiceName: "console",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	registry := prometheus.NewRegistry()
	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logg),
		api.WithMetrics(metrics.NewAPIMetrics(registry)),
	)
	if err != nil {
		return nil, err
	}

	catalogSvc, err := catalog.NewService(client)
	if err != nil {
		return nil, err
	}
	storeSvc, err := stores.NewService(client)
	if err != nil {
		return nil, err
	}
	activitySvc, err := activities.NewService(client)
	if err != nil {
		return nil, err
	}
	userSvc, err := users.NewService(client)
	if err != nil {
		return nil, err
	}
	chatSvc, err := chat.NewService(client)
	if err != nil {
		return nil, err
	}
	uploader, err := media.NewUploader(client, cfg.Upload.MaxUploadMB)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		logg:       logg,
		registry:   registry,
		client:     client,
		catalog:    catalogSvc,
		stores:     storeSvc,
		activities: activitySvc,
		users:      userSvc,
		chat:       chatSvc,
		uploader:   uploader,
	}, nil
}

// printJSON writes any payload as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// readInputFile decodes a JSON payload file into dst.
func readInputFile(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("read input file %s", path))
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "input file is not valid JSON")
	}
	return nil
}

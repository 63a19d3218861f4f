package main

import (
	"fmt"
	"io"

	"github.com/content-publisher/internal/config"
	"github.com/content-publisher/internal/content"
	"github.com/content-publisher/internal/service"
	"github.com/content-publisher/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every command needs once configuration is loaded
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	services *service.Services
	stdout   io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed articles into the store and export the site snapshot",
		Long: `Upserts every article into the row store in one transaction, then rewrites
the JSON snapshot from the whole store, newest first.

Configuration comes from the environment or a .env file:
  STORE_DIR, STORE_NAME, EXPORT_PATH, CONTENT_PATH, LOG_LEVEL, LOG_FORMAT`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(stderr)
		},
		RunE: a.runPublish,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "export",
			Short: "Rewrite the snapshot from the current store without seeding",
			Args:  cobra.NoArgs,
			RunE:  a.runExport,
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check the content records without touching the store",
			Args:  cobra.NoArgs,
			RunE:  a.runValidate,
		},
	)

	return root
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    stderr,
	})
	a.services = service.NewServices(cfg, a.log)
	return nil
}

func (a *app) runPublish(cmd *cobra.Command, args []string) error {
	records, err := content.Load(a.cfg.Content.Path)
	if err != nil {
		return err
	}

	result, err := a.services.Publisher.Publish(cmd.Context(), records)
	if result != nil {
		fmt.Fprintf(a.stdout, "Seeded %d articles (%d rows in store)\n", result.Processed, result.TotalRows)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Exported %d articles to %s\n", result.Exported, result.ExportPath)
	return nil
}

func (a *app) runExport(cmd *cobra.Command, args []string) error {
	result, err := a.services.Publisher.Export(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Exported %d articles to %s\n", result.Exported, result.Path)
	return nil
}

func (a *app) runValidate(cmd *cobra.Command, args []string) error {
	records, err := content.Load(a.cfg.Content.Path)
	if err != nil {
		return err
	}

	prepared, err := a.services.Publisher.Prepare(records)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Validated %d articles\n", len(prepared))
	return nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/content-publisher/internal/models"
	"github.com/content-publisher/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Publisher seeds content records into the store and exports the snapshot
type Publisher struct {
	open       StoreOpener
	validator  *validation.Validator
	exporter   *Exporter
	exportPath string
	log        zerolog.Logger
}

// NewPublisher creates a Publisher that writes its snapshot to exportPath
func NewPublisher(open StoreOpener, exporter *Exporter, exportPath string, log zerolog.Logger) *Publisher {
	return &Publisher{
		open:       open,
		validator:  validation.NewValidator(),
		exporter:   exporter,
		exportPath: exportPath,
		log:        log.With().Str("service", "publisher").Logger(),
	}
}

// Prepare applies defaults to copies of records and validates them as one batch.
// It never touches storage.
func (p *Publisher) Prepare(records []*models.Article) ([]*models.Article, error) {
	prepared := make([]*models.Article, len(records))
	for i, r := range records {
		if r != nil {
			prepared[i] = r.ApplyDefaults()
		}
	}

	if err := p.validator.ValidateBatch(prepared); err != nil {
		return nil, newPublishError(PhaseValidate, ErrValidation, err)
	}
	return prepared, nil
}

// Publish validates records, upserts them in one transaction and rewrites the
// snapshot from the whole store.
//
// On ErrExportWrite the upsert has been committed and the returned result is
// non-nil; running Export or Publish again heals the snapshot.
func (p *Publisher) Publish(ctx context.Context, records []*models.Article) (*models.PublishResult, error) {
	startTime := time.Now()
	result := &models.PublishResult{
		RunID:      uuid.New().String(),
		ExportPath: p.exportPath,
	}
	log := p.log.With().Str("run_id", result.RunID).Logger()

	log.Info().Int("records", len(records)).Msg("Starting publish")

	prepared, err := p.Prepare(records)
	if err != nil {
		log.Error().Err(err).Msg("Publish aborted before any write")
		return nil, err
	}

	store, err := p.openStore(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Storage unavailable")
		return nil, err
	}
	defer p.closeStore(store, log)

	articles := store.Articles()

	processed, err := articles.UpsertBatch(ctx, prepared)
	if err != nil {
		err = newPublishError(PhaseUpsert, ErrStorageWrite, err)
		log.Error().Err(err).Int("batch_size", len(prepared)).Msg("Batch rolled back")
		return nil, err
	}
	result.Processed = processed
	log.Debug().Str("phase", string(PhaseUpsert)).Int("processed", processed).Msg("Batch committed")

	// Informational only
	total, err := articles.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count stored articles")
	}
	result.TotalRows = total

	exported, err := p.exporter.WriteFile(ctx, p.exportPath, articles)
	result.Duration = time.Since(startTime)
	if err != nil {
		err = newPublishError(PhaseExport, ErrExportWrite, err)
		log.Error().Err(err).
			Int("processed", processed).
			Msg("Store committed but snapshot is stale")
		return result, err
	}
	result.Exported = exported

	log.Info().
		Int("processed", result.Processed).
		Int("total_rows", result.TotalRows).
		Int("exported", result.Exported).
		Str("export_path", result.ExportPath).
		Int64("duration_ms", result.Duration.Milliseconds()).
		Msg("Publish completed")

	return result, nil
}

// Export rewrites the snapshot from the current store without upserting
func (p *Publisher) Export(ctx context.Context) (*models.ExportResult, error) {
	startTime := time.Now()
	result := &models.ExportResult{
		RunID: uuid.New().String(),
		Path:  p.exportPath,
	}
	log := p.log.With().Str("run_id", result.RunID).Logger()

	store, err := p.openStore(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Storage unavailable")
		return nil, err
	}
	defer p.closeStore(store, log)

	exported, err := p.exporter.WriteFile(ctx, p.exportPath, store.Articles())
	result.Duration = time.Since(startTime)
	if err != nil {
		err = newPublishError(PhaseExport, ErrExportWrite, err)
		log.Error().Err(err).Msg("Export failed")
		return nil, err
	}
	result.Exported = exported

	log.Info().Int("exported", exported).Str("path", result.Path).Msg("Export completed")
	return result, nil
}

func (p *Publisher) openStore(ctx context.Context) (Store, error) {
	store, err := p.open(ctx)
	if err != nil {
		var perr *PublishError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, newPublishError(PhaseOpen, ErrStorageUnavailable, err)
	}
	return store, nil
}

func (p *Publisher) closeStore(store Store, log zerolog.Logger) {
	if err := store.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close store")
	}
}

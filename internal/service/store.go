package service

import (
	"context"

	"github.com/content-publisher/internal/config"
	"github.com/content-publisher/internal/database"
	"github.com/content-publisher/internal/repository"
	"github.com/rs/zerolog"
)

// Store is an open content store. Close releases it.
type Store interface {
	Articles() repository.ArticleRepository
	Close() error
}

// StoreOpener opens a store whose schema is in place
type StoreOpener func(ctx context.Context) (Store, error)

type dbStore struct {
	db       *database.DB
	articles repository.ArticleRepository
}

func (s *dbStore) Articles() repository.ArticleRepository { return s.articles }
func (s *dbStore) Close() error                           { return s.db.Close() }

// DatabaseOpener ensures the store directory, opens the database and
// ensures the schema, reporting failures as ErrStorageUnavailable
func DatabaseOpener(cfg *config.StoreConfig, log zerolog.Logger) StoreOpener {
	return func(ctx context.Context) (Store, error) {
		if cfg.Driver == config.DriverSQLite {
			if err := database.EnsureDir(cfg.Dir); err != nil {
				return nil, newPublishError(PhaseDirectory, ErrStorageUnavailable, err)
			}
			log.Debug().Str("phase", string(PhaseDirectory)).Str("dir", cfg.Dir).Msg("Storage directory ensured")
		}

		db, err := database.New(ctx, cfg, log)
		if err != nil {
			return nil, newPublishError(PhaseOpen, ErrStorageUnavailable, err)
		}

		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, newPublishError(PhaseSchema, ErrStorageUnavailable, err)
		}
		log.Debug().Str("phase", string(PhaseSchema)).Msg("Schema ensured")

		return &dbStore{db: db, articles: repository.NewArticleRepo(db.DB)}, nil
	}
}

package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/content-publisher/internal/config"
	"github.com/content-publisher/internal/content"
	"github.com/content-publisher/internal/database"
	"github.com/content-publisher/internal/mocks"
	"github.com/content-publisher/internal/models"
	"github.com/content-publisher/internal/repository"
	"github.com/content-publisher/internal/service"
	"github.com/content-publisher/internal/validation"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const batchSize = 1000

func generateArticles(n int) []*models.Article {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := make([]*models.Article, n)
	for i := 0; i < n; i++ {
		a := &models.Article{
			Slug:          fmt.Sprintf("article-%06d", i),
			Title:         fmt.Sprintf("Article %d", i),
			Excerpt:       "A short summary for the listing page.",
			Content:       "## Heading\n\nBody text with a [link](https://example.com).",
			Category:      "production-planning",
			PublishedDate: base.AddDate(0, 0, i%365).Format("2006-01-02"),
			Featured:      i%10 == 0,
		}
		if i%3 == 0 {
			a.Image = models.StringPtr(fmt.Sprintf("/images/article-%d.png", i))
		}
		articles[i] = a.ApplyDefaults()
	}
	return articles
}

// BenchmarkValidateBatch benchmarks the full pre-write validation pass
func BenchmarkValidateBatch(b *testing.B) {
	validator := validation.NewValidator()
	articles := generateArticles(batchSize)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := validator.ValidateBatch(articles); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(batchSize*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkUpsertBatch benchmarks one transactional upsert into SQLite
func BenchmarkUpsertBatch(b *testing.B) {
	cfg := &config.StoreConfig{
		Driver:       config.DriverSQLite,
		Dir:          b.TempDir(),
		Name:         "bench.db",
		MaxOpenConns: 1,
		PingTimeout:  5 * time.Second,
	}
	db, err := database.New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		b.Fatal(err)
	}

	repo := repository.NewArticleRepo(db.DB)
	articles := generateArticles(batchSize)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := repo.UpsertBatch(context.Background(), articles); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(batchSize*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkStreamArticles benchmarks reading the store for export
func BenchmarkStreamArticles(b *testing.B) {
	repo := mocks.NewMockArticleRepository()
	repo.UpsertBatch(context.Background(), generateArticles(batchSize))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		count := 0
		repo.StreamAll(context.Background(), func(*models.Article) error {
			count++
			return nil
		})
	}

	b.ReportMetric(float64(batchSize*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkEncodeSnapshot benchmarks rendering the snapshot document
func BenchmarkEncodeSnapshot(b *testing.B) {
	articles := generateArticles(batchSize)

	for _, indent := range []int{0, 2} {
		b.Run(fmt.Sprintf("indent=%d", indent), func(b *testing.B) {
			exporter := service.NewExporter(indent, zerolog.Nop())

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				data, err := exporter.Encode(articles)
				if err != nil {
					b.Fatal(err)
				}
				b.SetBytes(int64(len(data)))
			}
		})
	}
}

// BenchmarkLoadContent benchmarks decoding a YAML content file
func BenchmarkLoadContent(b *testing.B) {
	data, err := yaml.Marshal(generateArticles(batchSize))
	if err != nil {
		b.Fatal(err)
	}
	path := filepath.Join(b.TempDir(), "articles.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if _, err := content.Load(path); err != nil {
			b.Fatal(err)
		}
	}
}

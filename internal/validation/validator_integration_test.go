package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/content-publisher/internal/content"
	"github.com/content-publisher/internal/models"
)

// writeContentFile renders n article records as YAML, applying breakers to the
// records at their indexes, and returns the file path.
func writeContentFile(t *testing.T, n int, breakers map[int]string) string {
	t.Helper()

	var b strings.Builder
	for i := 0; i < n; i++ {
		fields := map[string]string{
			"slug":          fmt.Sprintf("record-%04d", i),
			"title":         fmt.Sprintf("Record %d", i),
			"excerpt":       "Summary",
			"content":       "Body",
			"category":      "quality",
			"publishedDate": fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
		}
		if line, ok := breakers[i]; ok {
			key, value, _ := strings.Cut(line, "=")
			if value == "" {
				delete(fields, key)
			} else {
				fields[key] = value
			}
		}

		first := true
		for _, key := range []string{"slug", "title", "excerpt", "content", "category", "publishedDate", "format", "language", "youtubeUrl"} {
			value, ok := fields[key]
			if !ok {
				continue
			}
			prefix := "  "
			if first {
				prefix = "- "
				first = false
			}
			fmt.Fprintf(&b, "%s%s: %q\n", prefix, key, value)
		}
	}

	path := filepath.Join(t.TempDir(), "articles.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateBatch_ContentFile(t *testing.T) {
	breakers := map[int]string{
		3:   "title=",
		17:  "category=gardening",
		42:  "publishedDate=01/02/2024",
		88:  "format=video",
		120: "language=english",
		150: "youtubeUrl=not a url",
		199: "slug=record-0003",
	}
	path := writeContentFile(t, 200, breakers)

	records, err := content.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 200 {
		t.Fatalf("Expected 200 records, got %d", len(records))
	}

	prepared := make([]*models.Article, len(records))
	for i, r := range records {
		prepared[i] = r.ApplyDefaults()
	}

	err = NewValidator().ValidateBatch(prepared)
	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("Expected *BatchError, got %v", err)
	}

	expected := map[int]string{
		3:   "title",
		17:  "category",
		42:  "publishedDate",
		88:  "format",
		120: "language",
		150: "youtubeUrl",
		199: "slug",
	}
	if len(batchErr.Records) != len(expected) {
		t.Fatalf("Expected %d invalid records, got %d: %v", len(expected), len(batchErr.Records), err)
	}
	for _, rec := range batchErr.Records {
		field, ok := expected[rec.Index]
		if !ok {
			t.Errorf("Unexpected invalid record %d: %+v", rec.Index, rec.Errors)
			continue
		}
		if rec.Errors[0].Field != field {
			t.Errorf("Record %d: expected error on %s, got %s (%s)", rec.Index, field, rec.Errors[0].Field, rec.Errors[0].Message)
		}
	}
}

func TestValidateBatch_EmbeddedContent(t *testing.T) {
	records, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}

	prepared := make([]*models.Article, len(records))
	for i, r := range records {
		prepared[i] = r.ApplyDefaults()
	}

	if err := NewValidator().ValidateBatch(prepared); err != nil {
		t.Errorf("Embedded content should be valid: %v", err)
	}
}

// Package content loads the article records the publisher seeds.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/content-publisher/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed articles.yaml
var defaultArticles []byte

// Default returns the embedded site articles
func Default() ([]*models.Article, error) {
	articles, err := decodeYAML(defaultArticles)
	if err != nil {
		return nil, fmt.Errorf("embedded articles: %w", err)
	}
	return articles, nil
}

// Load reads articles from a .yaml, .yml or .json file.
// An empty path selects the embedded articles.
func Load(path string) ([]*models.Article, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	var articles []*models.Article
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		articles, err = decodeYAML(data)
	case ".json":
		articles, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported content file extension %q (want .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return articles, nil
}

func decodeYAML(data []byte) ([]*models.Article, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var articles []*models.Article
	if err := dec.Decode(&articles); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return articles, nil
}

func decodeJSON(data []byte) ([]*models.Article, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var articles []*models.Article
	if err := dec.Decode(&articles); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return articles, nil
}

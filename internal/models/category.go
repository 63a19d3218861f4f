package models

import "sort"

// Categories is the closed set of topical tags with their English display labels
var Categories = map[string]string{
	"production-planning": "Production Planning",
	"shop-floor":          "Shop Floor",
	"quality":             "Quality",
	"maintenance":         "Maintenance",
	"erp-integration":     "ERP Integration",
	"industry-4-0":        "Industry 4.0",
	"case-study":          "Case Study",
	"product-news":        "Product News",
}

// IsValidCategory reports whether category belongs to the closed set
func IsValidCategory(category string) bool {
	_, ok := Categories[category]
	return ok
}

// CategoryLabel returns the display label for category, or "" when unknown
func CategoryLabel(category string) string {
	return Categories[category]
}

// CategoryNames returns the category keys in sorted order
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for name := range Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

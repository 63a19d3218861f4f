package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/content-publisher/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	langCodeRegex = regexp.MustCompile(`^[a-z]{2}(?:-[A-Z]{2})?$`)
)

// FieldError represents a single invalid field
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// RecordError collects the field errors of one record in a batch
type RecordError struct {
	Index  int          `json:"index"`
	Slug   string       `json:"slug,omitempty"`
	Errors []FieldError `json:"errors"`
}

// BatchError is returned when one or more records in a batch are invalid
type BatchError struct {
	Records []RecordError `json:"records"`
}

func (e *BatchError) Error() string {
	if len(e.Records) == 0 {
		return "invalid batch"
	}
	first := e.Records[0]
	fields := make([]string, 0, len(first.Errors))
	for _, fe := range first.Errors {
		fields = append(fields, fe.Field+": "+fe.Message)
	}
	msg := fmt.Sprintf("record %d (slug %q): %s", first.Index, first.Slug, strings.Join(fields, "; "))
	if more := len(e.Records) - 1; more > 0 {
		msg += fmt.Sprintf(" (and %d more invalid records)", more)
	}
	return msg
}

// Validator checks content records before they are written
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON key
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		return langCodeRegex.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ValidateArticle validates a single record
func (v *Validator) ValidateArticle(article *models.Article) []FieldError {
	if article == nil {
		return []FieldError{{Field: "record", Message: "record is nil"}}
	}

	err := v.validate.Struct(article)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "record", Message: err.Error()}}
	}

	errors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		errors = append(errors, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
			Value:   fieldValue(fe),
		})
	}
	return errors
}

// ValidateBatch validates every record and rejects duplicate slugs within the batch.
// It returns a *BatchError listing every invalid record, or nil.
func (v *Validator) ValidateBatch(articles []*models.Article) error {
	var records []RecordError
	seen := make(map[string]int, len(articles))

	for i, article := range articles {
		errors := v.ValidateArticle(article)

		if article != nil && article.Slug != "" {
			if first, dup := seen[article.Slug]; dup {
				errors = append(errors, FieldError{
					Field:   "slug",
					Message: fmt.Sprintf("duplicate slug, first used by record %d", first),
					Value:   article.Slug,
				})
			} else {
				seen[article.Slug] = i
			}
		}

		if len(errors) > 0 {
			rec := RecordError{Index: i, Errors: errors}
			if article != nil {
				rec.Slug = article.Slug
			}
			records = append(records, rec)
		}
	}

	if len(records) > 0 {
		return &BatchError{Records: records}
	}
	return nil
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "slug":
		return "slug must be kebab-case (lowercase letters, numbers, hyphens)"
	case "category":
		return "category must be one of: " + strings.Join(models.CategoryNames(), ", ")
	case "langcode":
		return "language must be a short language code such as en or nl-BE"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return field + " must be an ISO 8601 date (YYYY-MM-DD)"
	case "gt":
		return field + " must be a positive number of minutes"
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

func fieldValue(fe validator.FieldError) interface{} {
	if fe.Tag() == "required" {
		return nil
	}
	return fe.Value()
}

package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olive-branch-content-api/internal/models"
)

var slugRegex = regexp.MustCompile(`^[^\s/\\?#]+$`)

// dateLayouts are tried in order; the first that parses wins
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator validates content sources at the load boundary
type Validator struct {
	articleSlugCache  map[string]bool
	categorySlugCache map[string]bool
	idCache           map[string]bool
}

// NewValidator creates a new validator instance. Use one per collection:
// ids are only unique within a collection.
func NewValidator() *Validator {
	return &Validator{
		articleSlugCache:  make(map[string]bool),
		categorySlugCache: make(map[string]bool),
		idCache:           make(map[string]bool),
	}
}

// AddID adds a record id to the uniqueness cache
func (v *Validator) AddID(id string) {
	v.idCache[id] = true
}

// ValidateID checks the effective id of a record against ids already added
func (v *Validator) ValidateID(id string) []ValidationError {
	if v.idCache[id] {
		return []ValidationError{{Field: "id", Message: "id already exists", Value: id}}
	}
	return nil
}

// AddArticleSlug adds a slug to the uniqueness cache
func (v *Validator) AddArticleSlug(slug string) {
	v.articleSlugCache[slug] = true
}

// AddCategorySlug adds a category slug to the uniqueness cache
func (v *Validator) AddCategorySlug(slug string) {
	v.categorySlugCache[slug] = true
}

// ValidateArticle validates article frontmatter. slug is the effective slug
// after the filename fallback has been applied.
func (v *Validator) ValidateArticle(src *models.ArticleSource, slug string) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(src.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	errors = append(errors, v.validateSlug(slug, v.articleSlugCache)...)

	if strings.TrimSpace(src.Category) == "" {
		errors = append(errors, ValidationError{Field: "category", Message: "category is required"})
	}

	publishedAt, pubErrs := requiredDate("publishedAt", src.PublishedAt)
	errors = append(errors, pubErrs...)

	if src.UpdatedAt != "" {
		updatedAt, err := ParseDate(src.UpdatedAt)
		if err != nil {
			errors = append(errors, ValidationError{Field: "updatedAt", Message: "invalid date format", Value: src.UpdatedAt})
		} else if len(pubErrs) == 0 && updatedAt.Before(publishedAt) {
			errors = append(errors, ValidationError{Field: "updatedAt", Message: "updatedAt must not be before publishedAt", Value: src.UpdatedAt})
		}
	}

	if src.ReadTime < 0 {
		errors = append(errors, ValidationError{Field: "readTime", Message: "readTime must be positive", Value: src.ReadTime})
	}

	return errors
}

// ValidateEvidence validates evidence document frontmatter
func (v *Validator) ValidateEvidence(src *models.EvidenceSource) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(src.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	if strings.TrimSpace(src.Category) == "" {
		errors = append(errors, ValidationError{Field: "category", Message: "category is required"})
	}

	if src.DocumentType != "" && !models.ValidDocumentTypes[models.DocumentType(src.DocumentType)] {
		errors = append(errors, ValidationError{
			Field:   "documentType",
			Message: "invalid documentType, must be one of: report, document, testimony, media, other",
			Value:   src.DocumentType,
		})
	}

	if src.VerificationStatus != "" && !models.ValidVerificationStatuses[models.VerificationStatus(src.VerificationStatus)] {
		errors = append(errors, ValidationError{
			Field:   "verificationStatus",
			Message: "invalid verificationStatus, must be one of: verified, pending, disputed",
			Value:   src.VerificationStatus,
		})
	}

	publishedAt, pubErrs := requiredDate("publishedAt", src.PublishedAt)
	errors = append(errors, pubErrs...)

	for _, f := range []struct{ name, value string }{{"createdAt", src.CreatedAt}, {"updatedAt", src.UpdatedAt}} {
		if f.value == "" {
			continue
		}
		t, err := ParseDate(f.value)
		if err != nil {
			errors = append(errors, ValidationError{Field: f.name, Message: "invalid date format", Value: f.value})
		} else if f.name == "updatedAt" && len(pubErrs) == 0 && t.Before(publishedAt) {
			errors = append(errors, ValidationError{Field: f.name, Message: "updatedAt must not be before publishedAt", Value: f.value})
		}
	}

	return errors
}

// ValidateTimelineEvent validates a timeline event JSON object
func (v *Validator) ValidateTimelineEvent(src *models.TimelineEventSource) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(src.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	_, dateErrs := requiredDate("date", src.Date)
	errors = append(errors, dateErrs...)

	for _, f := range []struct{ name, value string }{{"createdAt", src.CreatedAt}, {"updatedAt", src.UpdatedAt}} {
		if f.value == "" {
			continue
		}
		if _, err := ParseDate(f.value); err != nil {
			errors = append(errors, ValidationError{Field: f.name, Message: "invalid date format", Value: f.value})
		}
	}

	return errors
}

// ValidateCategory validates a category JSON object
func (v *Validator) ValidateCategory(src *models.CategorySource) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(src.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	errors = append(errors, v.validateSlug(src.Slug, v.categorySlugCache)...)

	return errors
}

func (v *Validator) validateSlug(slug string, seen map[string]bool) []ValidationError {
	switch {
	case slug == "":
		return []ValidationError{{Field: "slug", Message: "slug is required"}}
	case !slugRegex.MatchString(slug):
		return []ValidationError{{Field: "slug", Message: "slug must not contain whitespace or path separators", Value: slug}}
	case seen[slug]:
		return []ValidationError{{Field: "slug", Message: "duplicate slug", Value: slug}}
	}
	return nil
}

func requiredDate(field, value string) (time.Time, []ValidationError) {
	if value == "" {
		return time.Time{}, []ValidationError{{Field: field, Message: field + " is required"}}
	}
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}, []ValidationError{{Field: field, Message: "invalid date format", Value: value}}
	}
	return t, nil
}

// ParseDate parses an absolute instant from the formats content files use.
// A bare year is accepted for era-level precision, and a leading '-' marks a
// year before the common era (e.g. "-586" or "-0586-07-01").
//
// Go years are astronomical (year 0 is 1 BCE), so N BCE becomes year 1-N:
// "-586" yields time year -585. There is no year 0 BCE.
func ParseDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	bce := false
	if strings.HasPrefix(s, "-") {
		bce = true
		s = s[1:]
	}

	t, err := parseCE(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", value)
	}
	if bce {
		if t.Year() == 0 {
			return time.Time{}, fmt.Errorf("unrecognized date %q", value)
		}
		t = time.Date(1-t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return t.UTC(), nil
}

func parseCE(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Bare year, possibly fewer than four digits
	year, err := strconv.Atoi(s)
	if err != nil || year < 0 {
		return time.Time{}, fmt.Errorf("not a year: %q", s)
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
}

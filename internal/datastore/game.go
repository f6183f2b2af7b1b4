package datastore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lepinkainen/gameshelf/internal/platform"
)

// GamesTable is the table name used locally and when publishing.
const GamesTable = "games"

// ErrNotFound is returned when a game id does not exist.
var ErrNotFound = errors.New("game not found")

// GameRecord is one entry in the collection.
type GameRecord struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title" validate:"required,max=200"`
	Platform  platform.Platform `json:"platform" validate:"platform"`
	Year      int               `json:"year" validate:"gte=1970,lte=2030"`
	Completed bool              `json:"completed"`
	CoverURL  string            `json:"coverUrl" validate:"omitempty,url"`
	Rating    int               `json:"rating" validate:"gte=0,lte=5"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToMap flattens the record into the column map used by Store.BatchInsert.
func (g GameRecord) ToMap() map[string]any {
	return map[string]any{
		"id":         g.ID,
		"title":      g.Title,
		"platform":   string(g.Platform),
		"year":       g.Year,
		"completed":  g.Completed,
		"cover_url":  g.CoverURL,
		"rating":     g.Rating,
		"created_at": g.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": g.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("platform", validatePlatform)
	return v
}

func validatePlatform(fl validator.FieldLevel) bool {
	return platform.Platform(fl.Field().String()).Valid()
}

// ValidationError lists the fields of a GameRecord that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid game: %s", strings.Join(e.Fields, "; "))
}

// Validate checks g against the collection constraints.
func (g GameRecord) Validate() error {
	err := validate.Struct(g)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validation failed: %w", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, describeFieldError(fe))
	}
	return &ValidationError{Fields: fields}
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "platform":
		return fmt.Sprintf("platform %q is not one of %s", fe.Value(), strings.Join(platform.Names(), ", "))
	case "gte", "lte":
		return fmt.Sprintf("%s %v is out of range", field, fe.Value())
	case "url":
		return fmt.Sprintf("%s %q is not a URL", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

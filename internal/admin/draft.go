package admin

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/lawshop/internal/model"
)

// ServiceDraft is the create/edit form of a catalog entry.
type ServiceDraft struct {
	Title            string   `json:"title" validate:"min=3"`
	Category         string   `json:"category" validate:"required"`
	Price            float64  `json:"price" validate:"finite,gt=0"`
	Currency         string   `json:"currency" validate:"required"`
	ShortDescription string   `json:"shortDescription" validate:"min=20"`
	Details          string   `json:"details"`
	DurationMinutes  *float64 `json:"durationMinutes" validate:"omitempty,finite,gte=0"`
	Format           string   `json:"format" validate:"omitempty,oneof=online in_person hybrid"`
	Audience         string   `json:"audience"`
	Image            string   `json:"image"`
	Type             string   `json:"type" validate:"omitempty,oneof=service product"`
	InStock          bool     `json:"inStock"`
}

// FieldErrors maps draft fields to their messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

var fieldMessages = map[string]string{
	"title":            "Enter a title (at least 3 characters).",
	"category":         "Enter a category.",
	"price":            "Enter a valid price.",
	"currency":         "Select currency.",
	"shortDescription": "Enter a short description (min 20 characters).",
	"durationMinutes":  "Enter a valid duration.",
	"format":           "Select a valid format.",
	"type":             "Select a valid type.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Normalize trims text fields and defaults the type to "service".
func (d ServiceDraft) Normalize() ServiceDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)
	d.Currency = strings.TrimSpace(d.Currency)
	d.ShortDescription = strings.TrimSpace(d.ShortDescription)
	d.Details = strings.TrimSpace(d.Details)
	d.Audience = strings.TrimSpace(d.Audience)
	d.Image = strings.TrimSpace(d.Image)
	if d.Type == "" {
		d.Type = "service"
	}
	return d
}

// ValidateDraft is the single validation routine shared by create and
// edit. It returns nil or FieldErrors.
func ValidateDraft(d ServiceDraft) error {
	d = d.Normalize()
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value."
		}
		out[fe.Field()] = msg
	}
	return out
}

// ToService turns a valid draft into a catalog entry.
func (d ServiceDraft) ToService(rating float64) model.Service {
	d = d.Normalize()
	return model.Service{
		Title:            d.Title,
		Slug:             Slugify(d.Title),
		Category:         d.Category,
		Price:            d.Price,
		Currency:         d.Currency,
		DurationMinutes:  d.DurationMinutes,
		Format:           model.Format(d.Format),
		Audience:         d.Audience,
		Image:            d.Image,
		Type:             d.Type,
		InStock:          d.InStock,
		Rating:           rating,
		ShortDescription: d.ShortDescription,
		Details:          d.Details,
	}
}

// DraftFromService pre-fills the edit form.
func DraftFromService(s model.Service) ServiceDraft {
	return ServiceDraft{
		Title:            s.Title,
		Category:         s.Category,
		Price:            s.Price,
		Currency:         s.Currency,
		ShortDescription: s.ShortDescription,
		Details:          s.Details,
		DurationMinutes:  s.DurationMinutes,
		Format:           string(s.Format),
		Audience:         s.Audience,
		Image:            s.Image,
		Type:             s.Type,
		InStock:          s.InStock,
	}
}

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// Slugify lowercases, drops everything but ASCII letters, digits, spaces
// and hyphens, then joins words with single hyphens.
func Slugify(v string) string {
	v = slugStrip.ReplaceAllString(strings.ToLower(v), "")
	v = slugSpaces.ReplaceAllString(strings.TrimSpace(v), "-")
	return slugDashes.ReplaceAllString(v, "-")
}

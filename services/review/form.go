package review

import (
	"fmt"
	"reflect"
	"strings"

	"reviewdesk/models"

	"github.com/go-playground/validator/v10"
)

// ReviewInput is the user-editable part of a review, bound from a form post or JSON body.
type ReviewInput struct {
	Rating  int    `form:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment string `form:"comment" json:"comment" validate:"max=2000"`
}

// FormResult is the outcome of processing a review form. Exactly one of Review and
// Invalid is set.
type FormResult struct {
	Input   ReviewInput
	Review  *models.Review
	Invalid *ValidationError
}

// Valid reports whether the form was accepted and persisted.
func (r *FormResult) Valid() bool {
	return r.Invalid == nil && r.Review != nil
}

// Errors returns the field messages of a rejected form, or an empty map.
func (r *FormResult) Errors() map[string]string {
	if r.Invalid == nil {
		return map[string]string{}
	}
	return r.Invalid.Fields
}

func newFormValidator(translator Translator) (*validator.Validate, error) {
	v := validator.New()
	// Report errors under the form field name rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := translator.RegisterValidator(v); err != nil {
		return nil, fmt.Errorf("review form validator: %w", err)
	}
	return v, nil
}

// validateInput normalizes input and returns its field errors, if any.
func (s *DefaultReviewService) validateInput(input *ReviewInput) *ValidationError {
	input.Comment = strings.TrimSpace(input.Comment)

	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["form"] = err.Error()
		return &ValidationError{Fields: fields}
	}
	trans := s.Translator.For(s.Translator.DefaultLocale())
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fe.Translate(trans)
	}
	return &ValidationError{Fields: fields}
}

// InvalidInput builds a rejected FormResult for input that could not even be bound,
// such as a non-numeric rating.
func InvalidInput(input ReviewInput, field, message string) *FormResult {
	return &FormResult{
		Input:   input,
		Invalid: &ValidationError{Fields: map[string]string{field: message}},
	}
}

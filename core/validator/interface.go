package validator

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs against their `validate` tags.
type Validator interface {
	Struct(s any) error
	StructCtx(ctx context.Context, s any) error
	GetValidator() *validator.Validate
}

// FieldError is one failed rule with a translated message.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

// ValidationErrors collects every failed rule of one validation run.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Message)
	}
	return joinMessages(msgs)
}

// Has reports whether field failed any rule.
func (ve ValidationErrors) Has(field string) bool {
	for _, fe := range ve {
		if fe.Field == field {
			return true
		}
	}
	return false
}

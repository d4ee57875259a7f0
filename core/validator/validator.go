package validator

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validate is the shared validator used by the config loader.
var Validate = New()

type validatorImpl struct {
	validator *validator.Validate
	trans     ut.Translator
}

// Option configures a validator.
type Option func(*validatorImpl)

// WithTagName sets the struct tag read for rules (default "validate").
func WithTagName(name string) Option {
	return func(v *validatorImpl) {
		v.validator.SetTagName(name)
	}
}

// New creates a validator with English error messages.
func New(opts ...Option) Validator {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	v := &validatorImpl{
		validator: validator.New(validator.WithRequiredStructEnabled()),
		trans:     trans,
	}
	_ = en_translations.RegisterDefaultTranslations(v.validator, trans)

	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *validatorImpl) Struct(s any) error {
	return v.StructCtx(context.Background(), s)
}

func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validator.StructCtx(ctx, s))
}

func (v *validatorImpl) GetValidator() *validator.Validate {
	return v.validator
}

func (v *validatorImpl) translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: fe.Translate(v.trans),
		})
	}
	return out
}

func joinMessages(msgs []string) string {
	return strings.Join(msgs, "; ")
}

package config

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Validate checks struct tags first, then the rules that span fields.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return newChecker("config").
		When(c.Input.Mmap, func(ch *checker) {
			ch.Custom("input.mmap", func() error {
				if c.Input.Compression == "snappy" ||
					(c.Input.Compression != "none" && edgelist.IsSnappyPath(c.Input.Path)) {
					return edgelist.ErrMmapCompressed
				}
				return nil
			})
		}).
		When(c.Report.S3.Enabled(), func(ch *checker) {
			ch.Custom("report.s3", func() error {
				if (c.Report.S3.AccessKeyID == "") != (c.Report.S3.SecretAccessKey == "") {
					return errors.New("access_key_id and secret_access_key must be set together")
				}
				return nil
			})
		}).
		When(c.Report.Postgres.Enabled(), func(ch *checker) {
			ch.Custom("report.postgres.table", func() error {
				if c.Report.Postgres.Table == "" {
					return errors.New("required when dsn is set")
				}
				return nil
			})
		}).
		Err()
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "oneof":
			return fmt.Errorf("%s: %q must be one of [%s]", field, e.Value(), e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}

// checker collects cross-field validation errors rather than failing on the
// first one.
type checker struct {
	name   string
	errors []error
}

func newChecker(name string) *checker {
	return &checker{name: name}
}

func (ch *checker) Custom(field string, fn func() error) *checker {
	if err := fn(); err != nil {
		ch.errors = append(ch.errors, fmt.Errorf("%s.%s: %w", ch.name, field, err))
	}
	return ch
}

func (ch *checker) When(condition bool, validations func(*checker)) *checker {
	if condition {
		validations(ch)
	}
	return ch
}

func (ch *checker) Err() error {
	return errors.Join(ch.errors...)
}

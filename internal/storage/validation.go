// Package storage provides the data persistence layer for the roofline
// application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/perryhq/roofline/internal/common"
	"github.com/perryhq/roofline/internal/model"

	"github.com/go-playground/validator/v10"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrNotFound     = common.ErrNotFound
)

// validate holds the struct validator used for tagged entities (clients,
// users, questionnaires).
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePricingModel validates a pricing model before persistence.
func validatePricingModel(m *model.PricingModel) error {
	if m == nil {
		return fmt.Errorf("%w: pricing model", ErrNilParameter)
	}
	if err := validateString(m.ID, "pricing model id"); err != nil {
		return err
	}
	if err := validateString(m.Name, "pricing model name"); err != nil {
		return err
	}
	return nil
}

// validateWorkflow validates a workflow before persistence.
func validateWorkflow(w *model.Workflow) error {
	if w == nil {
		return fmt.Errorf("%w: workflow", ErrNilParameter)
	}
	return w.Validate()
}

// validateJob validates a job before persistence, including its tagged
// questionnaire fields.
func validateJob(j *model.Job) error {
	if j == nil {
		return fmt.Errorf("%w: job", ErrNilParameter)
	}
	if err := j.Validate(); err != nil {
		return err
	}
	if j.Questionnaire != nil {
		if err := validate.Struct(j.Questionnaire); err != nil {
			return fmt.Errorf("invalid questionnaire: %w", err)
		}
	}
	return nil
}

// validateTrigger validates a notification trigger before persistence.
func validateTrigger(t *model.NotificationTrigger) error {
	if t == nil {
		return fmt.Errorf("%w: notification trigger", ErrNilParameter)
	}
	return t.Validate()
}

// validateClient validates a client record before persistence.
func validateClient(c *model.Client) error {
	if c == nil {
		return fmt.Errorf("%w: client", ErrNilParameter)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	return nil
}

// validateUser validates a user record before persistence.
func validateUser(u *model.User) error {
	if u == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	if u.Password == "" {
		return fmt.Errorf("user %s missing password", u.Email)
	}
	return nil
}

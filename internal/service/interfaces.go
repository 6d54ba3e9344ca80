// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/perryhq/roofline/internal/model"
)

// JobFilter defines filtering options for job queries. Search matches a
// case-insensitive substring of client name, address, or trade.
type JobFilter struct {
	Status string
	Search string
	Limit  int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Pricing model operations
	SavePricingModel(ctx context.Context, m *model.PricingModel) error
	GetPricingModel(ctx context.Context, id string) (*model.PricingModel, error)
	ListPricingModels(ctx context.Context) ([]model.PricingModel, error)
	DeletePricingModel(ctx context.Context, id string) error

	// Workflow operations
	SaveWorkflow(ctx context.Context, w *model.Workflow) error
	GetWorkflow(ctx context.Context, id string) (*model.Workflow, error)
	ListWorkflows(ctx context.Context) ([]model.Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) error

	// Job operations
	SaveJob(ctx context.Context, j *model.Job) error
	GetJob(ctx context.Context, id string) (*model.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error)
	DeleteJob(ctx context.Context, id string) error

	// Client operations
	SaveClient(ctx context.Context, c *model.Client) error
	GetClient(ctx context.Context, id string) (*model.Client, error)
	ListClients(ctx context.Context, search string) ([]model.Client, error)

	// Notification trigger operations
	SaveNotificationTrigger(ctx context.Context, t *model.NotificationTrigger) error
	GetNotificationTrigger(ctx context.Context, id string) (*model.NotificationTrigger, error)
	ListNotificationTriggers(ctx context.Context) ([]model.NotificationTrigger, error)

	// User operations
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

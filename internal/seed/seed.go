package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/service"
	"github.com/perryhq/roofline/internal/storage"
	"github.com/perryhq/roofline/internal/workflow"
)

// Users returns the starter team. Passwords are mock-auth data for local
// development only.
func Users() []model.User {
	return []model.User{
		{
			ID:       "user-perry",
			Name:     "Perry",
			Email:    "perry@perryhq.com",
			Role:     model.RoleAdmin,
			Password: "perry123",
		},
		{
			ID:       "user-dana",
			Name:     "Dana Whitfield",
			Email:    "dana@perryhq.com",
			Role:     model.RoleManager,
			Password: "dana123",
		},
	}
}

// Clients returns the starter client directory.
func Clients() []model.Client {
	return []model.Client{
		{
			ID:         "client-hendricks",
			Name:       "Tom Hendricks",
			SpouseName: "Laura Hendricks",
			Email:      "tom.hendricks@example.com",
			Phone:      "610-555-0142",
			Address:    "412 Birchwood Lane, Media, PA",
			CreatedAt:  referenceDate,
		},
		{
			ID:        "client-okafor",
			Name:      "Grace Okafor",
			Email:     "grace.okafor@example.com",
			Phone:     "484-555-0199",
			Address:   "88 Chester Pike, Ridley Park, PA",
			CreatedAt: referenceDate,
		},
		{
			ID:        "client-marino",
			Name:      "Sal Marino",
			Phone:     "215-555-0177",
			Address:   "1530 Porter Street, Philadelphia, PA",
			CreatedAt: referenceDate,
		},
	}
}

// Jobs returns the starter job pipeline. Checklists are derived from the
// standard workflow so seeded jobs match what size and status changes would
// produce.
func Jobs() []model.Job {
	w := StandardWorkflow()

	hendricks := model.Job{
		ID:         "job-hendricks-roof",
		ClientID:   "client-hendricks",
		ClientName: "Tom Hendricks",
		SpouseName: "Laura Hendricks",
		Address:    "412 Birchwood Lane, Media, PA",
		Phone:      "610-555-0142",
		Email:      "tom.hendricks@example.com",
		Trade:      "Roofing",
		Status:     model.StatusLead,
		JobSize:    model.SizeLarge,
		Priority:   "high",
		Notes:      "Full tear-off, two layers. Referral from the Okafor job.",
		CreatedAt:  referenceDate,
		Questionnaire: &model.Questionnaire{
			HearAboutUs:    "Referral",
			CurrentIssue:   "Shingles lifting along the ridge, water stain in the upstairs bedroom.",
			IssueDuration:  "About two months",
			InsuranceClaim: "No",
			Urgency:        "Soon",
			HomeAge:        "32 years",
			ComponentAge:   "18 years",
			RoofType:       "Asphalt shingle",
			CallbackTime:   "Weekday mornings",
		},
	}
	hendricks.Checklist = workflow.SeedChecklist(&hendricks, w)
	for i, item := range hendricks.Checklist {
		if item.ID == "lead-referral-check" || item.ID == "lead-site-visit" {
			hendricks.Checklist[i].Completed = true
		}
	}
	hendricks.Communications = []model.Communication{
		{
			ID:       "comm-hendricks-welcome",
			Trigger:  "new-lead",
			Subject:  "New Lead Auto-Response",
			Template: "lead-welcome",
			Status:   model.CommDelivered,
			SentAt:   referenceDate,
		},
	}

	okafor := model.Job{
		ID:         "job-okafor-gutters",
		ClientID:   "client-okafor",
		ClientName: "Grace Okafor",
		Address:    "88 Chester Pike, Ridley Park, PA",
		Phone:      "484-555-0199",
		Email:      "grace.okafor@example.com",
		Trade:      "Gutters",
		Status:     model.StatusJobScheduled,
		JobSize:    model.SizeSmall,
		Priority:   "medium",
		CreatedAt:  referenceDate.Add(-21 * 24 * time.Hour),
	}
	_ = okafor.Pricing.SetPayment(1850, 925)
	okafor.Checklist = workflow.SeedChecklist(&okafor, w)

	marino := model.Job{
		ID:         "job-marino-repair",
		ClientID:   "client-marino",
		ClientName: "Sal Marino",
		Address:    "1530 Porter Street, Philadelphia, PA",
		Phone:      "215-555-0177",
		Trade:      "Roofing",
		Status:     model.StatusEstimateProgress,
		JobSize:    model.SizeMedium,
		Priority:   "low",
		Notes:      "Flat roof repair over the back kitchen.",
		CreatedAt:  referenceDate.Add(-7 * 24 * time.Hour),
	}
	marino.Checklist = workflow.SeedChecklist(&marino, w)

	return []model.Job{hendricks, okafor, marino}
}

// Seed loads the reference data set into storage: the active roofing
// pricing model, the model templates, the standard workflow, the email
// triggers, and the starter clients, jobs, and users. Existing records
// with the same ids are overwritten; existing user emails are left in
// place.
func Seed(ctx context.Context, store service.Storage, out io.Writer) error {
	roofing := RoofingModel()
	templates := Templates()
	triggers := Triggers()
	clients := Clients()
	jobs := Jobs()
	users := Users()

	total := 1 + len(templates) + 1 + len(triggers) + len(clients) + len(jobs) + len(users)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Seeding reference data..."),
	)
	step := func() {
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to advance seed progress bar", "error", err)
		}
	}

	if err := store.SavePricingModel(ctx, roofing); err != nil {
		return fmt.Errorf("seeding pricing model %s: %w", roofing.ID, err)
	}
	step()

	for i := range templates {
		if err := store.SavePricingModel(ctx, &templates[i]); err != nil {
			return fmt.Errorf("seeding pricing model %s: %w", templates[i].ID, err)
		}
		step()
	}

	if err := store.SaveWorkflow(ctx, StandardWorkflow()); err != nil {
		return fmt.Errorf("seeding standard workflow: %w", err)
	}
	step()

	for i := range triggers {
		if err := store.SaveNotificationTrigger(ctx, &triggers[i]); err != nil {
			return fmt.Errorf("seeding notification trigger %s: %w", triggers[i].ID, err)
		}
		step()
	}

	for i := range clients {
		if err := store.SaveClient(ctx, &clients[i]); err != nil {
			return fmt.Errorf("seeding client %s: %w", clients[i].ID, err)
		}
		step()
	}

	for i := range jobs {
		if err := store.SaveJob(ctx, &jobs[i]); err != nil {
			return fmt.Errorf("seeding job %s: %w", jobs[i].ID, err)
		}
		step()
	}

	for i := range users {
		err := store.CreateUser(ctx, &users[i])
		if err != nil && !errors.Is(err, storage.ErrDuplicateEmail) {
			return fmt.Errorf("seeding user %s: %w", users[i].Email, err)
		}
		step()
	}

	slog.Info("Seeded reference data",
		"pricing_models", len(templates),
		"triggers", len(triggers),
		"clients", len(clients),
		"jobs", len(jobs),
		"users", len(users))
	return nil
}

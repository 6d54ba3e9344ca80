package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/service"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func samplePricingModel() *model.PricingModel {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return &model.PricingModel{
		ID:          "m1",
		Name:        "Roofing",
		Description: "roofing rates",
		Icon:        "Home",
		CreatedAt:   now,
		UpdatedAt:   now,
		Rates: &model.RateTables{
			ShingleMetalBase: model.ShingleMetalBase{
				GAF: model.RateTable{"7-8_1layer": 400},
			},
			Skylights: model.Skylights{
				Models:           map[string]model.SkylightModel{"C06": {FixedPrice: 450, VentedPrice: 625, LaborCost: 300}},
				PitchMultipliers: model.RateTable{"9-10": 1.5},
			},
			GlobalRules: model.GlobalRules{
				Tiers: [3]model.UpchargeTier{
					{Threshold: 5000, Amount: 1500},
					{Threshold: 7500, Amount: 1000},
					{Threshold: 10000, Amount: 750},
				},
				DiscountPercent: 23,
			},
		},
	}
}

func TestPricingModelRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	m := samplePricingModel()
	if err := store.SavePricingModel(ctx, m); err != nil {
		t.Fatalf("SavePricingModel() error: %v", err)
	}

	got, err := store.GetPricingModel(ctx, "m1")
	if err != nil {
		t.Fatalf("GetPricingModel() error: %v", err)
	}
	if got.Name != m.Name || got.Icon != m.Icon {
		t.Errorf("loaded model = %q/%q, want %q/%q", got.Name, got.Icon, m.Name, m.Icon)
	}
	if got.Rates == nil {
		t.Fatal("loaded model lost its rate tables")
	}
	if rate := got.Rates.ShingleMetalBase.GAF["7-8_1layer"]; rate != 400 {
		t.Errorf("loaded rate = %v, want 400", rate)
	}
	if got.Rates.GlobalRules.Tiers[1].Amount != 1000 {
		t.Errorf("loaded tier 2 = %+v", got.Rates.GlobalRules.Tiers[1])
	}

	// Upsert: saving again with changed data overwrites.
	m.Name = "Roofing v2"
	if err := store.SavePricingModel(ctx, m); err != nil {
		t.Fatalf("SavePricingModel() upsert error: %v", err)
	}
	got, err = store.GetPricingModel(ctx, "m1")
	if err != nil {
		t.Fatalf("GetPricingModel() error: %v", err)
	}
	if got.Name != "Roofing v2" {
		t.Errorf("upsert did not overwrite name: %q", got.Name)
	}
}

func TestPricingModelNilRates(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	m := samplePricingModel()
	m.ID = "stub"
	m.Rates = nil
	if err := store.SavePricingModel(ctx, m); err != nil {
		t.Fatalf("SavePricingModel() error: %v", err)
	}

	got, err := store.GetPricingModel(ctx, "stub")
	if err != nil {
		t.Fatalf("GetPricingModel() error: %v", err)
	}
	if got.Rates != nil {
		t.Errorf("template stub came back with rates: %+v", got.Rates)
	}
}

func TestGetPricingModelNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.GetPricingModel(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeletePricingModel(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	m := samplePricingModel()
	if err := store.SavePricingModel(ctx, m); err != nil {
		t.Fatalf("SavePricingModel() error: %v", err)
	}
	if err := store.DeletePricingModel(ctx, "m1"); err != nil {
		t.Fatalf("DeletePricingModel() error: %v", err)
	}
	if err := store.DeletePricingModel(ctx, "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestWorkflowRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	w := &model.Workflow{
		ID:   "w1",
		Name: "Standard",
		Stages: []model.Stage{
			{ID: "lead", Name: "New Lead", Tasks: []model.Task{
				{ID: "t1", Type: model.TaskCheckbox, Label: "Call back", Sizes: []model.JobSize{model.SizeLarge}},
				{ID: "t2", Type: model.TaskDropdown, Label: "Source", Options: []string{"Referral", "Website"}},
			}},
		},
	}
	if err := store.SaveWorkflow(ctx, w); err != nil {
		t.Fatalf("SaveWorkflow() error: %v", err)
	}

	got, err := store.GetWorkflow(ctx, "w1")
	if err != nil {
		t.Fatalf("GetWorkflow() error: %v", err)
	}
	if len(got.Stages) != 1 || len(got.Stages[0].Tasks) != 2 {
		t.Fatalf("loaded workflow shape = %+v", got.Stages)
	}
	if got.Stages[0].Tasks[0].Sizes[0] != model.SizeLarge {
		t.Errorf("task sizes lost in round trip: %+v", got.Stages[0].Tasks[0])
	}
	if len(got.Stages[0].Tasks[1].Options) != 2 {
		t.Errorf("dropdown options lost in round trip: %+v", got.Stages[0].Tasks[1])
	}

	workflows, err := store.ListWorkflows(ctx)
	if err != nil {
		t.Fatalf("ListWorkflows() error: %v", err)
	}
	if len(workflows) != 1 {
		t.Errorf("ListWorkflows() returned %d, want 1", len(workflows))
	}

	if err := store.DeleteWorkflow(ctx, "w1"); err != nil {
		t.Fatalf("DeleteWorkflow() error: %v", err)
	}
	if _, err := store.GetWorkflow(ctx, "w1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete error = %v, want ErrNotFound", err)
	}
}

func TestSaveWorkflowRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	w := &model.Workflow{
		ID:   "w1",
		Name: "Broken",
		Stages: []model.Stage{
			{ID: "s1", Name: "A"},
			{ID: "s1", Name: "B"},
		},
	}
	if err := store.SaveWorkflow(ctx, w); err == nil {
		t.Error("SaveWorkflow() accepted duplicate stage ids")
	}
}

func sampleJob() *model.Job {
	return &model.Job{
		ID:         "j1",
		ClientID:   "c1",
		ClientName: "Tom Hendricks",
		Address:    "412 Birchwood Lane, Media, PA",
		Phone:      "610-555-0142",
		Email:      "tom@example.com",
		Trade:      "Roofing",
		Status:     model.StatusLead,
		JobSize:    model.SizeLarge,
		Priority:   "high",
		CreatedAt:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Checklist: []model.ChecklistItem{
			{ID: "t1", Task: "Initial Referral Check", Assignee: "Perry", Completed: true},
			{ID: "t2", Task: "Schedule Perry for Site Visit", Assignee: "Perry"},
		},
		Questionnaire: &model.Questionnaire{
			HearAboutUs:    "Referral",
			InsuranceClaim: "No",
			Urgency:        "Soon",
		},
		Communications: []model.Communication{
			{
				ID:      "comm1",
				Trigger: "new-lead",
				Subject: "New Lead Auto-Response",
				Status:  model.CommDelivered,
				SentAt:  time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
			},
		},
		Pricing: model.JobPricing{Total: 12000, Paid: 4000, Balance: 8000},
	}
}

func TestJobRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	j := sampleJob()
	if err := store.SaveJob(ctx, j); err != nil {
		t.Fatalf("SaveJob() error: %v", err)
	}

	got, err := store.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("GetJob() error: %v", err)
	}
	if got.Status != model.StatusLead || got.JobSize != model.SizeLarge {
		t.Errorf("loaded job stage/size = %s/%s", got.Status, got.JobSize)
	}
	if len(got.Checklist) != 2 || !got.Checklist[0].Completed || got.Checklist[1].Completed {
		t.Errorf("checklist state lost: %+v", got.Checklist)
	}
	if got.Questionnaire == nil || got.Questionnaire.InsuranceClaim != "No" {
		t.Errorf("questionnaire lost: %+v", got.Questionnaire)
	}
	if got.Pricing.Balance != 8000 {
		t.Errorf("pricing balance = %v, want 8000", got.Pricing.Balance)
	}
	if len(got.Communications) != 1 || got.Communications[0].Trigger != "new-lead" {
		t.Errorf("communication log lost: %+v", got.Communications)
	}
}

func TestNotificationTriggerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	triggers := []model.NotificationTrigger{
		{ID: "completion-survey", Title: "Job Completion Survey", Stage: model.StatusCompleted, Template: "feedback-request", Enabled: true},
		{ID: "new-lead", Title: "New Lead Auto-Response", Stage: model.StatusLead, Template: "lead-welcome", Enabled: true},
	}
	for i := range triggers {
		if err := store.SaveNotificationTrigger(ctx, &triggers[i]); err != nil {
			t.Fatalf("SaveNotificationTrigger(%s) error: %v", triggers[i].ID, err)
		}
	}

	got, err := store.GetNotificationTrigger(ctx, "new-lead")
	if err != nil {
		t.Fatalf("GetNotificationTrigger() error: %v", err)
	}
	if got.Stage != model.StatusLead || !got.Enabled {
		t.Errorf("loaded trigger = %+v", got)
	}

	// Disable via upsert.
	got.Enabled = false
	if err := store.SaveNotificationTrigger(ctx, got); err != nil {
		t.Fatalf("SaveNotificationTrigger() upsert error: %v", err)
	}
	got, err = store.GetNotificationTrigger(ctx, "new-lead")
	if err != nil {
		t.Fatalf("GetNotificationTrigger() error: %v", err)
	}
	if got.Enabled {
		t.Error("upsert did not disable the trigger")
	}

	// Listing orders by pipeline position, not insertion or id order.
	list, err := store.ListNotificationTriggers(ctx)
	if err != nil {
		t.Fatalf("ListNotificationTriggers() error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "new-lead" || list[1].ID != "completion-survey" {
		t.Errorf("trigger order = %+v", list)
	}

	if _, err := store.GetNotificationTrigger(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing trigger error = %v, want ErrNotFound", err)
	}
}

func TestSaveNotificationTriggerRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	bad := &model.NotificationTrigger{ID: "t1", Title: "Bad Stage", Stage: "archived"}
	if err := store.SaveNotificationTrigger(ctx, bad); err == nil {
		t.Error("SaveNotificationTrigger() accepted a stage outside the pipeline")
	}
}

func TestSaveJobRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	j := sampleJob()
	j.Pricing.Balance = 0 // breaks balance = total - paid
	if err := store.SaveJob(ctx, j); err == nil {
		t.Error("SaveJob() accepted an inconsistent pricing snapshot")
	}

	j = sampleJob()
	j.Questionnaire.InsuranceClaim = "Maybe"
	if err := store.SaveJob(ctx, j); err == nil {
		t.Error("SaveJob() accepted an out-of-range questionnaire answer")
	}
}

func TestListJobsFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	first := sampleJob()
	second := sampleJob()
	second.ID = "j2"
	second.ClientName = "Grace Okafor"
	second.Address = "88 Chester Pike, Ridley Park, PA"
	second.Status = model.StatusJobScheduled
	second.Trade = "Gutters"
	second.CreatedAt = second.CreatedAt.Add(time.Hour)
	for _, j := range []*model.Job{first, second} {
		if err := store.SaveJob(ctx, j); err != nil {
			t.Fatalf("SaveJob(%s) error: %v", j.ID, err)
		}
	}

	tests := []struct {
		name    string
		filter  service.JobFilter
		wantIDs []string
	}{
		{name: "no filter", filter: service.JobFilter{}, wantIDs: []string{"j1", "j2"}},
		{name: "by status", filter: service.JobFilter{Status: string(model.StatusJobScheduled)}, wantIDs: []string{"j2"}},
		{name: "search client name", filter: service.JobFilter{Search: "okafor"}, wantIDs: []string{"j2"}},
		{name: "search trade", filter: service.JobFilter{Search: "gutters"}, wantIDs: []string{"j2"}},
		{name: "search address", filter: service.JobFilter{Search: "birchwood"}, wantIDs: []string{"j1"}},
		{name: "limit", filter: service.JobFilter{Limit: 1}, wantIDs: []string{"j1"}},
		{name: "no match", filter: service.JobFilter{Search: "windows"}, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := store.ListJobs(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListJobs() error: %v", err)
			}
			if len(jobs) != len(tt.wantIDs) {
				t.Fatalf("ListJobs() returned %d jobs, want %d", len(jobs), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if jobs[i].ID != id {
					t.Errorf("jobs[%d] = %s, want %s", i, jobs[i].ID, id)
				}
			}
		})
	}
}

func TestClientRoundTripAndSearch(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	c := &model.Client{
		ID:        "c1",
		Name:      "Tom Hendricks",
		Email:     "tom@example.com",
		Phone:     "610-555-0142",
		Address:   "412 Birchwood Lane, Media, PA",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.SaveClient(ctx, c); err != nil {
		t.Fatalf("SaveClient() error: %v", err)
	}

	got, err := store.GetClient(ctx, "c1")
	if err != nil {
		t.Fatalf("GetClient() error: %v", err)
	}
	if got.Name != c.Name || got.Phone != c.Phone {
		t.Errorf("loaded client = %+v", got)
	}

	match, err := store.ListClients(ctx, "hendricks")
	if err != nil {
		t.Fatalf("ListClients() error: %v", err)
	}
	if len(match) != 1 {
		t.Errorf("search returned %d clients, want 1", len(match))
	}
	none, err := store.ListClients(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListClients() error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("search returned %d clients, want 0", len(none))
	}
}

func TestSaveClientRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	c := &model.Client{ID: "c1", Name: "No Phone"}
	if err := store.SaveClient(ctx, c); err == nil {
		t.Error("SaveClient() accepted a client without a phone number")
	}

	c = &model.Client{ID: "c2", Name: "Bad Email", Phone: "1", Email: "not-an-email"}
	if err := store.SaveClient(ctx, c); err == nil {
		t.Error("SaveClient() accepted a malformed email")
	}
}

func TestUserCreateAndDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	u := &model.User{ID: "u1", Name: "Perry", Email: "perry@perryhq.com", Role: model.RoleAdmin, Password: "perry123"}
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	dup := &model.User{ID: "u2", Name: "Other", Email: "perry@perryhq.com", Role: model.RoleManager, Password: "x"}
	if err := store.CreateUser(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("duplicate email error = %v, want ErrDuplicateEmail", err)
	}

	got, err := store.GetUserByEmail(ctx, "perry@perryhq.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if got.Role != model.RoleAdmin || got.Password != "perry123" {
		t.Errorf("loaded user = %+v", got)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("ListUsers() returned %d, want 1", len(users))
	}
}

func TestNilContextRejected(t *testing.T) {
	store := newTestStorage(t)

	//nolint:staticcheck // deliberately passing a nil context
	if _, err := store.GetPricingModel(nil, "m1"); err == nil {
		t.Error("GetPricingModel() accepted a nil context")
	}
}

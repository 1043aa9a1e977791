package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/manuel14gregorioo/Agencia/internal/db"
	"github.com/manuel14gregorioo/Agencia/internal/model"
)

const (
	minProjectLength = 20
	maxBulkLeadIDs   = 100
	maxSearchLength  = 100
	defaultPerPage   = 20
	maxPerPage       = 100
)

type leadStore interface {
	InsertLead(ctx context.Context, lead *model.Lead) (*model.Lead, error)
	GetLead(ctx context.Context, leadID int64) (*model.Lead, error)
	ListLeads(ctx context.Context, filter model.LeadFilter) ([]model.Lead, int64, error)
	UpdateLead(ctx context.Context, leadID int64, update model.LeadUpdate, stampContacted bool) (*model.Lead, error)
	DeleteLead(ctx context.Context, leadID int64) (bool, error)
	BulkUpdateLeads(ctx context.Context, leadIDs []int64, update model.LeadUpdate) (int64, error)
}

type leadMailer interface {
	SendLeadNotification(ctx context.Context, lead *model.Lead) error
	SendLeadConfirmation(ctx context.Context, lead *model.Lead) error
}

type LeadService struct {
	store  leadStore
	mailer leadMailer
	logger *slog.Logger
}

// NewLeadService constructs the service. mailer may be nil when email is
// not configured.
func NewLeadService(store leadStore, mailer leadMailer, logger *slog.Logger) *LeadService {
	return &LeadService{store: store, mailer: mailer, logger: logger}
}

// CreateLead stores a sanitized contact-form submission and fires the
// notification emails. Email failures are logged and never surface to the
// submitter.
func (s *LeadService) CreateLead(ctx context.Context, req model.ContactRequest, ipAddress, userAgent, referrer string) (*model.Lead, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrInvalidInput
	}
	if len(strings.TrimSpace(req.Project)) < minProjectLength {
		return nil, fmt.Errorf("%w: please describe the project in more detail", ErrInvalidInput)
	}

	lead := &model.Lead{
		Name:        sanitizeText(req.Name, 100),
		Email:       strings.TrimSpace(req.Email),
		Phone:       optional(sanitizeText(req.Phone, 20)),
		Project:     sanitizeText(req.Project, 2000),
		Service:     optional(sanitizeText(req.Service, 50)),
		Source:      "landing",
		IPAddress:   optional(ipAddress),
		UserAgent:   optional(sanitizeText(userAgent, 500)),
		Referrer:    optional(sanitizeText(referrer, 500)),
		UTMSource:   optional(sanitizeText(req.UTMSource, 100)),
		UTMMedium:   optional(sanitizeText(req.UTMMedium, 100)),
		UTMCampaign: optional(sanitizeText(req.UTMCampaign, 100)),
	}

	created, err := s.store.InsertLead(ctx, lead)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendLeadNotification(ctx, created); err != nil {
			s.logger.Error("lead notification email failed", "lead_id", created.ID, "error", err)
		}
		if err := s.mailer.SendLeadConfirmation(ctx, created); err != nil {
			s.logger.Error("lead confirmation email failed", "lead_id", created.ID, "error", err)
		}
	}

	return created, nil
}

func (s *LeadService) GetLead(ctx context.Context, leadID int64) (*model.Lead, error) {
	lead, err := s.store.GetLead(ctx, leadID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) ListLeads(ctx context.Context, filter model.LeadFilter) (*model.LeadListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}
	if _, ok := model.LeadStatuses[filter.Status]; !ok {
		filter.Status = ""
	}
	filter.Search = truncate(strings.TrimSpace(filter.Search), maxSearchLength)
	if filter.OrderDir != "asc" {
		filter.OrderDir = "desc"
	}

	leads, total, err := s.store.ListLeads(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Listings omit the per-visitor tracking columns; the detail view
	// carries them.
	for i := range leads {
		leads[i].StripTracking()
	}

	pages := (total + int64(filter.PerPage) - 1) / int64(filter.PerPage)
	return &model.LeadListResponse{
		Leads:       leads,
		Total:       total,
		Pages:       pages,
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
		HasNext:     int64(filter.Page) < pages,
		HasPrev:     filter.Page > 1,
	}, nil
}

func (s *LeadService) UpdateLead(ctx context.Context, leadID int64, update model.LeadUpdate) (*model.Lead, error) {
	if err := validateLeadUpdate(update); err != nil {
		return nil, err
	}

	existing, err := s.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if update.Empty() {
		return existing, nil
	}

	// Moving new -> contacted records the first-contact time.
	stampContacted := update.Status != nil &&
		*update.Status == model.LeadStatusContacted &&
		existing.Status == model.LeadStatusNew

	lead, err := s.store.UpdateLead(ctx, leadID, update, stampContacted)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, leadID int64) error {
	deleted, err := s.store.DeleteLead(ctx, leadID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *LeadService) BulkUpdateLeads(ctx context.Context, req model.BulkUpdateRequest) (int64, error) {
	if len(req.LeadIDs) == 0 {
		return 0, fmt.Errorf("%w: no leads specified", ErrInvalidInput)
	}
	if len(req.LeadIDs) > maxBulkLeadIDs {
		return 0, fmt.Errorf("%w: at most %d leads per operation", ErrInvalidInput, maxBulkLeadIDs)
	}
	if req.Updates.Empty() {
		return 0, fmt.Errorf("%w: no updatable fields specified", ErrInvalidInput)
	}
	if err := validateLeadUpdate(req.Updates); err != nil {
		return 0, err
	}

	return s.store.BulkUpdateLeads(ctx, req.LeadIDs, req.Updates)
}

func validateLeadUpdate(update model.LeadUpdate) error {
	if update.Status != nil {
		if _, ok := model.LeadStatuses[*update.Status]; !ok {
			return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *update.Status)
		}
	}
	if update.Priority != nil && (*update.Priority < 0 || *update.Priority > 2) {
		return fmt.Errorf("%w: priority out of range", ErrInvalidInput)
	}
	return nil
}

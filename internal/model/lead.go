package model

import "time"

// Lead statuses, in pipeline order.
const (
	LeadStatusNew        = "new"
	LeadStatusContacted  = "contacted"
	LeadStatusInProgress = "in_progress"
	LeadStatusProposal   = "proposal"
	LeadStatusWon        = "won"
	LeadStatusLost       = "lost"
	LeadStatusDiscarded  = "discarded"
)

var LeadStatuses = map[string]struct{}{
	LeadStatusNew:        {},
	LeadStatusContacted:  {},
	LeadStatusInProgress: {},
	LeadStatusProposal:   {},
	LeadStatusWon:        {},
	LeadStatusLost:       {},
	LeadStatusDiscarded:  {},
}

type Lead struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	Project     string     `json:"project"`
	Service     *string    `json:"service"`
	Status      string     `json:"status"`
	Source      string     `json:"source"`
	Priority    int        `json:"priority"`
	Notes       *string    `json:"notes"`
	AssignedTo  *int64     `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ContactedAt *time.Time `json:"contacted_at"`

	IPAddress   *string `json:"ip_address,omitempty"`
	UserAgent   *string `json:"user_agent,omitempty"`
	Referrer    *string `json:"referrer,omitempty"`
	UTMSource   *string `json:"utm_source,omitempty"`
	UTMMedium   *string `json:"utm_medium,omitempty"`
	UTMCampaign *string `json:"utm_campaign,omitempty"`
}

// StripTracking clears the audit fields so list responses omit them.
func (l *Lead) StripTracking() {
	l.IPAddress = nil
	l.UserAgent = nil
	l.Referrer = nil
	l.UTMSource = nil
	l.UTMMedium = nil
	l.UTMCampaign = nil
}

type ContactRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Project     string `json:"project" binding:"required"`
	Service     string `json:"service"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  int64  `json:"lead_id"`
}

// LeadUpdate is the allow-listed partial update for a lead. Nil fields are
// left untouched.
type LeadUpdate struct {
	Status     *string `json:"status"`
	Priority   *int    `json:"priority"`
	Notes      *string `json:"notes"`
	Service    *string `json:"service"`
	AssignedTo *int64  `json:"assigned_to"`
}

func (u LeadUpdate) Empty() bool {
	return u.Status == nil && u.Priority == nil && u.Notes == nil &&
		u.Service == nil && u.AssignedTo == nil
}

type BulkUpdateRequest struct {
	LeadIDs []int64    `json:"lead_ids" binding:"required"`
	Updates LeadUpdate `json:"updates"`
}

type BulkUpdateResponse struct {
	Success      bool  `json:"success"`
	UpdatedCount int64 `json:"updated_count"`
}

type LeadFilter struct {
	Status   string
	Search   string
	OrderBy  string
	OrderDir string
	Page     int
	PerPage  int
}

type LeadListResponse struct {
	Leads       []Lead `json:"leads"`
	Total       int64  `json:"total"`
	Pages       int64  `json:"pages"`
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	HasNext     bool   `json:"has_next"`
	HasPrev     bool   `json:"has_prev"`
}

package client

import (
	"context"
	"errors"

	"github.com/manuel14gregorioo/Agencia/internal/model"
	"github.com/manuel14gregorioo/Agencia/internal/template"
)

// LeadMailer sends the lead-related transactional emails through Resend.
type LeadMailer struct {
	resend   *ResendClient
	notifyTo string
}

func NewLeadMailer(resend *ResendClient, notifyTo string) *LeadMailer {
	return &LeadMailer{resend: resend, notifyTo: notifyTo}
}

// SendLeadNotification alerts the team inbox about a new lead.
func (m *LeadMailer) SendLeadNotification(ctx context.Context, lead *model.Lead) error {
	if m.notifyTo == "" {
		return errors.New("no notification address configured")
	}
	subject, body := template.LeadNotification(lead)
	return m.resend.Send(ctx, []string{m.notifyTo}, subject, body)
}

// SendLeadConfirmation auto-replies to the submitter.
func (m *LeadMailer) SendLeadConfirmation(ctx context.Context, lead *model.Lead) error {
	subject, body := template.LeadConfirmation(lead)
	return m.resend.Send(ctx, []string{lead.Email}, subject, body)
}

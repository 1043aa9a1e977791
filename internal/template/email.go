// Package template renders the transactional email bodies.
//
// Placeholders use the {{name}} form and are substituted with
// HTML-escaped values.
package template

import (
	"html"
	"strconv"
	"strings"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

const leadNotificationBody = `
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #6366F1, #8B5CF6); padding: 30px; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0;">New lead received</h1>
  </div>
  <div style="background: #f9fafb; padding: 30px; border: 1px solid #e5e7eb;">
    <h2 style="color: #111827; margin-top: 0;">Contact details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb; color: #6b7280;">Name:</td>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb; font-weight: bold;">{{name}}</td>
      </tr>
      <tr>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb; color: #6b7280;">Email:</td>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb;">
          <a href="mailto:{{email}}" style="color: #6366F1;">{{email}}</a>
        </td>
      </tr>
      <tr>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb; color: #6b7280;">Phone:</td>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb;">{{phone}}</td>
      </tr>
      <tr>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb; color: #6b7280;">Service:</td>
        <td style="padding: 10px 0; border-bottom: 1px solid #e5e7eb;">{{service}}</td>
      </tr>
    </table>
    <h2 style="color: #111827;">Project</h2>
    <p style="background: white; padding: 15px; border-radius: 8px; border: 1px solid #e5e7eb;">{{project}}</p>
  </div>
  <div style="background: #111827; padding: 20px; border-radius: 0 0 10px 10px; text-align: center;">
    <p style="color: #9ca3af; margin: 0; font-size: 12px;">Lead #{{lead_id}} &middot; via {{source}}</p>
  </div>
</body>
</html>`

const leadConfirmationBody = `
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #6366F1, #8B5CF6); padding: 30px; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0;">Thanks for getting in touch!</h1>
  </div>
  <div style="background: #f9fafb; padding: 30px; border: 1px solid #e5e7eb;">
    <p style="color: #111827;">Hi {{name}},</p>
    <p style="color: #374151;">
      We received your message and will get back to you within 24 hours.
    </p>
    <p style="color: #374151;">
      Meanwhile, feel free to reply to this email if you want to add
      anything to your request.
    </p>
    <p style="color: #111827; margin-bottom: 0;">&mdash; The Agencia team</p>
  </div>
</body>
</html>`

// LeadNotification renders the internal alert for a new lead.
func LeadNotification(lead *model.Lead) (subject, body string) {
	subject = "New lead: " + lead.Name
	body = render(leadNotificationBody, map[string]string{
		"name":    lead.Name,
		"email":   lead.Email,
		"phone":   stringOr(lead.Phone, "not provided"),
		"service": stringOr(lead.Service, "-"),
		"project": lead.Project,
		"lead_id": strconv.FormatInt(lead.ID, 10),
		"source":  lead.Source,
	})
	return subject, body
}

// LeadConfirmation renders the auto-reply sent to the submitter.
func LeadConfirmation(lead *model.Lead) (subject, body string) {
	subject = "We received your message"
	body = render(leadConfirmationBody, map[string]string{
		"name": lead.Name,
	})
	return subject, body
}

func render(body string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", html.EscapeString(value))
	}
	return strings.NewReplacer(pairs...).Replace(body)
}

func stringOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

package template

import (
	"strings"
	"testing"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

func TestLeadNotification(t *testing.T) {
	phone := "+34 600 000 000"
	lead := &model.Lead{
		ID:      42,
		Name:    "Ana García",
		Email:   "ana@example.com",
		Phone:   &phone,
		Project: "New shop",
		Source:  "landing",
	}

	subject, body := LeadNotification(lead)
	if subject != "New lead: Ana García" {
		t.Fatalf("unexpected subject %q", subject)
	}
	for _, want := range []string{"Ana García", "ana@example.com", "+34 600 000 000", "Lead #42", "via landing"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, "{{") {
		t.Fatal("unreplaced placeholder in body")
	}
	// Missing optional fields fall back to placeholders.
	if !strings.Contains(body, "-") {
		t.Fatal("expected service fallback")
	}
}

func TestLeadNotificationEscapesHTML(t *testing.T) {
	lead := &model.Lead{
		Name:    `<script>alert("x")</script>`,
		Email:   "a@b.c",
		Project: "p",
	}

	_, body := LeadNotification(lead)
	if strings.Contains(body, "<script>alert") {
		t.Fatal("unescaped user input in body")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatal("expected escaped markup")
	}
}

func TestLeadConfirmation(t *testing.T) {
	subject, body := LeadConfirmation(&model.Lead{Name: "Ana"})
	if subject == "" {
		t.Fatal("empty subject")
	}
	if !strings.Contains(body, "Hi Ana,") {
		t.Fatalf("body missing greeting: %s", body)
	}
}

package mail

import (
	"strings"
	"testing"
)

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	tpl, ok := Render(TemplateBookingReceived, map[string]string{
		"name":      "John",
		"bookingId": "abc123",
		"startDate": "2024-09-01",
		"endDate":   "2024-09-05",
	})
	if !ok {
		t.Fatal("template not found")
	}

	for _, want := range []string{"John", "abc123", "2024-09-01", "2024-09-05"} {
		if !strings.Contains(tpl.Text, want) {
			t.Errorf("text body missing %q", want)
		}
		if want != "John" && !strings.Contains(tpl.HTML, want) {
			t.Errorf("html body missing %q", want)
		}
	}
	if strings.Contains(tpl.Text, "{{") {
		t.Errorf("unreplaced placeholder left in text: %s", tpl.Text)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, ok := Render("no-such-template", nil); ok {
		t.Error("expected ok=false for unknown template")
	}
}

func TestAllTemplatesHaveBothBodies(t *testing.T) {
	for _, name := range []string{TemplateWelcome, TemplateBookingReceived, TemplateBookingConfirmation, TemplateBookingUpdated} {
		tpl, ok := Render(name, nil)
		if !ok {
			t.Fatalf("template %s not found", name)
		}
		if tpl.Subject == "" || tpl.Text == "" || tpl.HTML == "" {
			t.Errorf("template %s is missing a part", name)
		}
	}
}

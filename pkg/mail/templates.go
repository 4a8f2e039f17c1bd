package mail

import "strings"

// Template is a canned email with {{placeholder}} markers in the
// subject, text, and HTML parts.
type Template struct {
	Subject string
	Text    string
	HTML    string
}

const (
	TemplateWelcome             = "welcome"
	TemplateBookingReceived     = "bookingReceived"
	TemplateBookingConfirmation = "bookingConfirmation"
	TemplateBookingUpdated      = "bookingUpdated"
)

var templates = map[string]Template{
	TemplateWelcome: {
		Subject: "Welcome to Yallambee Tiny Homes!",
		Text: "Hello {{name}},\n\nThank you for signing up with Yallambee Tiny Homes! We're excited to have you on board.\n\n" +
			"If you have any questions or need assistance, feel free to reach out to us.\n\nBest regards,\nThe Yallambee Tiny Homes Team",
		HTML: "<h1>Hello {{name}},</h1><p>Thank you for joining Yallambee Tiny Homes! We're thrilled to have you with us.</p>" +
			`<p>If you have any questions or need support, please don't hesitate to <a href="mailto:support@yallambeetinyhomes.com">contact us</a>.</p>` +
			"<p>Best regards,<br/>The Yallambee Tiny Homes Team</p>",
	},
	TemplateBookingReceived: {
		Subject: "Your Booking Request - Yallambee Tiny Homes",
		Text: "Dear {{name}},\n\nWe have received your booking request. Our team will review it, and you will be notified upon confirmation.\n\n" +
			"Booking Reference: {{bookingId}}\nBooking Dates: {{startDate}} to {{endDate}}\n\nThank you for choosing Yallambee Tiny Homes!",
		HTML: "<h1>Dear {{name}},</h1><p>We have received your booking request. Our team will review it, and you will be notified upon confirmation.</p>" +
			"<p><strong>Booking Reference:</strong> {{bookingId}}</p><p><strong>Booking Dates:</strong> {{startDate}} to {{endDate}}</p>" +
			"<p>Thank you for choosing Yallambee Tiny Homes!</p>",
	},
	TemplateBookingConfirmation: {
		Subject: "Your Booking has been confirmed! - Yallambee Tiny Homes",
		Text: "Dear {{name}},\n\nWe are delighted to confirm your booking with Yallambee Tiny Homes. " +
			"Your stay is scheduled from {{startDate}} to {{endDate}}. We look forward to hosting you!\n\nBest regards,\nThe Yallambee Team",
		HTML: "<h1>Booking Confirmation</h1><p>Dear {{name}},</p><p>We are delighted to confirm your booking with <strong>Yallambee Tiny Homes</strong>.</p>" +
			"<p>Your stay is scheduled from <strong>{{startDate}}</strong> to <strong>{{endDate}}</strong>.</p>" +
			"<p>We look forward to hosting you!</p><p>Best regards,<br/>The Yallambee Team</p>",
	},
	TemplateBookingUpdated: {
		Subject: "Your Booking Has Been Updated - Yallambee Tiny Homes",
		Text: "Dear {{name}},\n\nYour booking has been successfully updated.\n\nBooking Reference: {{bookingId}}\n" +
			"New Dates: {{startDate}} to {{endDate}}\n\nThank you for staying with Yallambee Tiny Homes.",
		HTML: "<h1>Dear {{name}},</h1><p>Your booking has been successfully updated.</p><p><strong>Booking Reference:</strong> {{bookingId}}</p>" +
			"<p><strong>New Dates:</strong> {{startDate}} to {{endDate}}</p><p>Thank you for staying with Yallambee Tiny Homes.</p>",
	},
}

// Render substitutes {{key}} markers with values. Unknown template
// names return ok=false; unmatched markers are left in place.
func Render(name string, values map[string]string) (Template, bool) {
	tpl, ok := templates[name]
	if !ok {
		return Template{}, false
	}

	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	replacer := strings.NewReplacer(pairs...)

	tpl.Subject = replacer.Replace(tpl.Subject)
	tpl.Text = replacer.Replace(tpl.Text)
	tpl.HTML = replacer.Replace(tpl.HTML)
	return tpl, true
}

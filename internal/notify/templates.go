package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/terapiemd/booking-service/internal/domain"
)

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
      .blue { background: #3b82f6; }
      .green { background: #10b981; }
      .red { background: #ef4444; }
      .content { background: #f9fafb; padding: 30px; border-radius: 0 0 8px 8px; }
      .details { background: white; padding: 20px; border-left: 4px solid #3b82f6; margin: 20px 0; }
      .message-box { background: white; padding: 20px; border-left: 4px solid #3b82f6; margin: 20px 0; font-style: italic; }
      .button { display: inline-block; background: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 20px 0; }
      .footer { font-size: 12px; color: #666; margin-top: 20px; text-align: center; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header {{.Tone}}">
        <h1>{{.Title}}</h1>
      </div>
      <div class="content">
        <p>Bună {{.RecipientName}},</p>
        {{template "content" .}}
        <p>Cu respect,<br>Echipa Terapie.md</p>
      </div>
    </div>
  </body>
</html>{{end}}`

const bookingRequestContent = `{{define "content"}}
<p>Ați primit o nouă cerere de programare de la <strong>{{.CounterpartName}}</strong>.</p>
<div class="details">
  <p><strong>Data:</strong> {{.Date}}</p>
  <p><strong>Ora:</strong> {{.Time}}</p>
  {{if .Notes}}<p><strong>Note:</strong> {{.Notes}}</p>{{end}}
</div>
<p>Vă rugăm să accesați dashboard-ul pentru a aproba sau respinge această cerere.</p>
<a href="{{.Link}}" class="button">Mergi la Dashboard</a>
{{end}}`

const statusChangeContent = `{{define "content"}}
{{if eq .Status "confirmed"}}<p>Programarea dvs. cu <strong>{{.ProviderName}}</strong> a fost confirmată.</p>
{{else if eq .Status "completed"}}<p>Sperăm că ședința cu <strong>{{.ProviderName}}</strong> a fost utilă. Vă invităm să lăsați o recenzie!</p>
{{else}}<p>Din păcate, programarea dvs. cu <strong>{{.ProviderName}}</strong> a fost respinsă.</p>
{{end}}
<div class="details">
  <p><strong>Terapeut:</strong> {{.ProviderName}}</p>
  <p><strong>Data:</strong> {{.Date}}</p>
  <p><strong>Ora:</strong> {{.Time}}</p>
  {{if .Reason}}<p><strong>{{if eq .Status "confirmed"}}Mesaj de la terapeut{{else}}Notă{{end}}:</strong> {{.Reason}}</p>{{end}}
</div>
{{if and (eq .Status "completed") .Link}}<div style="text-align: center;"><a href="{{.Link}}" class="button">Lasă o Recenzie</a></div>{{end}}
{{end}}`

const cancellationContent = `{{define "content"}}
<p>Programarea cu <strong>{{.CounterpartName}}</strong> a fost anulată de către client.</p>
<div class="details">
  <p><strong>Data:</strong> {{.Date}}</p>
  <p><strong>Ora:</strong> {{.Time}}</p>
  {{if .Reason}}<p><strong>Motiv:</strong> {{.Reason}}</p>{{end}}
</div>
<p>Calendarul dvs. a fost actualizat.</p>
{{end}}`

const newMessageContent = `{{define "content"}}
<p>Ai primit un mesaj nou de la <strong>{{.CounterpartName}}</strong>:</p>
<div class="message-box">"{{.Preview}}"</div>
<p>Pentru a răspunde, accesează platforma:</p>
<div style="text-align: center;"><a href="{{.Link}}" class="button">Vezi Mesajul</a></div>
<div class="footer"><p>Poți modifica setările de notificare din contul tău.</p></div>
{{end}}`

var templates = map[Kind]*template.Template{
	KindBookingRequest:      mustTemplate(bookingRequestContent),
	KindBookingStatusChange: mustTemplate(statusChangeContent),
	KindBookingCancellation: mustTemplate(cancellationContent),
	KindNewMessage:          mustTemplate(newMessageContent),
}

func mustTemplate(content string) *template.Template {
	t := template.Must(template.New("layout").Parse(layoutTemplate))
	return template.Must(t.Parse(content))
}

// emailData feeds every template; fields unused by a kind stay empty
type emailData struct {
	Tone            string
	Title           string
	RecipientName   string
	CounterpartName string
	ProviderName    string
	Status          string
	Date            string
	Time            string
	Notes           string
	Reason          string
	Preview         string
	Link            string
}

// subjectAndTone returns the e-mail subject, header title and header colour class
func subjectAndTone(n Notification, senderName string) (subject, title, tone string, err error) {
	switch n.Kind {
	case KindBookingRequest:
		return "📅 Cerere de Programare Nouă", "📅 Cerere de Programare Nouă", "blue", nil
	case KindBookingCancellation:
		return "Programare Anulată ❌", "❌ Programare Anulată", "red", nil
	case KindNewMessage:
		return "Mesaj nou de la " + senderName, "💬 Mesaj Nou", "blue", nil
	case KindBookingStatusChange:
		switch n.Status {
		case domain.StatusConfirmed:
			return "✅ Programare Confirmată", "✅ Programare Confirmată", "green", nil
		case domain.StatusCompleted:
			return "✨ Programare Finalizată", "✨ Programare Finalizată", "green", nil
		case domain.StatusCancelled:
			return "❌ Programare Respinsă", "❌ Programare Respinsă", "red", nil
		}
		return "", "", "", fmt.Errorf("%w: status %q", ErrUnknownKind, n.Status)
	}
	return "", "", "", fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
}

func render(kind Kind, data emailData) (string, error) {
	t, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, kind, err)
	}
	return buf.String(), nil
}

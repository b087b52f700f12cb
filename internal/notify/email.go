package notify

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"text/template"
	"time"

	"enquirycrm/internal/config"
	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"

	"gopkg.in/gomail.v2"
)

// Dialer sends prepared messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var digestTemplate = template.Must(template.New("digest").Parse(`Hello {{.Name}},

You have {{len .Enquiries}} follow-up(s) due between {{.From}} and {{.To}}:
{{range .Enquiries}}
  #{{.ID}} {{.CustomerName}} ({{.Status}}){{if .CustomerPhone}} phone {{.CustomerPhone}}{{end}}{{if .NextFollowUpAt}} at {{.NextFollowUpAt.Format "02 Jan 15:04 MST"}}{{end}}
{{- end}}

Enquiry CRM
`))

type digestData struct {
	Name      string
	From      string
	To        string
	Enquiries []digestLine
}

type digestLine struct {
	ID             uint
	CustomerName   string
	Status         domain.EnquiryStatus
	CustomerPhone  string
	NextFollowUpAt *time.Time
}

// EmailNotifier mails one digest per sales person. Enquiries without a
// reachable assignee go to the admin address when one is configured.
type EmailNotifier struct {
	cfg        config.EmailConfig
	dialer     Dialer
	recipients Recipients
	loc        *time.Location
}

// NewEmailNotifier builds a notifier sending through cfg's SMTP server.
func NewEmailNotifier(cfg config.EmailConfig, recipients Recipients, loc *time.Location) *EmailNotifier {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	return NewEmailNotifierWithDialer(cfg, d, recipients, loc)
}

// NewEmailNotifierWithDialer is NewEmailNotifier with an explicit transport.
func NewEmailNotifierWithDialer(cfg config.EmailConfig, dialer Dialer, recipients Recipients, loc *time.Location) *EmailNotifier {
	if loc == nil {
		loc = time.Local
	}
	return &EmailNotifier{cfg: cfg, dialer: dialer, recipients: recipients, loc: loc}
}

func (n *EmailNotifier) Name() string { return "email" }

// Notify sends every digest in one SMTP session.
func (n *EmailNotifier) Notify(ctx context.Context, d Digest) error {
	log := logger.For("EMAIL")
	if len(d.Enquiries) == 0 {
		return nil
	}

	byRep, leftover := groupBySalesPerson(d.Enquiries)
	ids := make([]uint, 0, len(byRep))
	for id := range byRep {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	reps, err := n.recipients.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load sales persons: %w", err)
	}
	known := make(map[uint]domain.SalesPerson, len(reps))
	for _, r := range reps {
		known[r.ID] = r
	}

	var msgs []*gomail.Message
	for _, id := range ids {
		rep, ok := known[id]
		if !ok || rep.Email == nil || *rep.Email == "" {
			leftover = append(leftover, byRep[id]...)
			continue
		}
		m, err := n.message(*rep.Email, rep.Name, d, byRep[id])
		if err != nil {
			return err
		}
		msgs = append(msgs, m)
	}

	if len(leftover) > 0 {
		if n.cfg.AdminEmail == "" {
			log.WithField("count", len(leftover)).Warn("No recipient for follow-ups without a reachable sales person")
		} else {
			m, err := n.message(n.cfg.AdminEmail, "team", d, leftover)
			if err != nil {
				return err
			}
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return nil
	}

	if !n.cfg.Enabled {
		log.WithField("messages", len(msgs)).Info("Email disabled, digest not sent")
		return nil
	}
	if err := n.dialer.DialAndSend(msgs...); err != nil {
		return fmt.Errorf("failed to send follow-up digest: %w", err)
	}
	log.WithField("messages", len(msgs)).Info("Follow-up digest sent")
	return nil
}

func (n *EmailNotifier) message(to, name string, d Digest, enquiries []domain.Enquiry) (*gomail.Message, error) {
	data := digestData{
		Name: name,
		From: d.From.In(n.loc).Format("02 Jan 2006"),
		To:   d.To.In(n.loc).Format("02 Jan 2006"),
	}
	for _, e := range enquiries {
		line := digestLine{ID: e.ID, CustomerName: e.CustomerName, Status: e.Status}
		if e.CustomerPhone != nil {
			line.CustomerPhone = *e.CustomerPhone
		}
		if e.NextFollowUpAt != nil {
			at := e.NextFollowUpAt.In(n.loc)
			line.NextFollowUpAt = &at
		}
		data.Enquiries = append(data.Enquiries, line)
	}

	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render digest: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromEmail, n.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%d follow-up(s) due", len(enquiries)))
	m.SetBody("text/plain", body.String())
	return m, nil
}

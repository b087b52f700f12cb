// Package notify delivers the follow-up digest produced by a scan. Delivery
// is best effort: a failed channel never blocks the others.
package notify

import (
	"context"
	"time"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
)

// Digest is the result of one follow-up scan.
type Digest struct {
	From      time.Time
	To        time.Time
	Enquiries []domain.Enquiry
}

// Notifier is one delivery channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, d Digest) error
}

// Recipients resolves sales persons for per-person delivery.
type Recipients interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.SalesPerson, error)
}

// groupBySalesPerson splits the digest by assignee. Unassigned enquiries are
// returned separately.
func groupBySalesPerson(enquiries []domain.Enquiry) (map[uint][]domain.Enquiry, []domain.Enquiry) {
	byRep := make(map[uint][]domain.Enquiry)
	var unassigned []domain.Enquiry
	for _, e := range enquiries {
		if e.AssignedToID == nil {
			unassigned = append(unassigned, e)
			continue
		}
		byRep[*e.AssignedToID] = append(byRep[*e.AssignedToID], e)
	}
	return byRep, unassigned
}

// LogNotifier writes every due enquiry to the application log.
type LogNotifier struct{}

func (LogNotifier) Name() string { return "log" }

func (LogNotifier) Notify(_ context.Context, d Digest) error {
	log := logger.For("FOLLOW_UP")
	log.WithFields(map[string]any{
		"from":  d.From.Format(time.RFC3339),
		"to":    d.To.Format(time.RFC3339),
		"count": len(d.Enquiries),
	}).Info("Follow-ups due")
	for _, e := range d.Enquiries {
		fields := map[string]any{
			"enquiry_id": e.ID,
			"customer":   e.CustomerName,
			"status":     e.Status,
		}
		if e.AssignedToID != nil {
			fields["sales_person_id"] = *e.AssignedToID
		}
		if e.NextFollowUpAt != nil {
			fields["due_at"] = e.NextFollowUpAt.Format(time.RFC3339)
		}
		log.WithFields(fields).Info("Follow-up due")
	}
	return nil
}

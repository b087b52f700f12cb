package services

import (
	"context"
	"time"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
	"enquirycrm/internal/metrics"
)

// EnquiryDraft is the input for creating an enquiry. Ids, status and
// timestamps are never taken from the caller.
type EnquiryDraft struct {
	CustomerName   string                `json:"customerName" validate:"required,max=120"`
	CustomerEmail  *string               `json:"customerEmail" validate:"omitnil,max=150"`
	CustomerPhone  *string               `json:"customerPhone" validate:"omitnil,max=20"`
	CustomerMobile *string               `json:"customerMobile" validate:"omitnil,max=20"`
	InterestLevel  *domain.InterestLevel `json:"interestLevel" validate:"omitnil,enum"`
	PropertyType   *domain.PropertyType  `json:"propertyType" validate:"omitnil,enum"`
	BudgetRange    *domain.BudgetRange   `json:"budgetRange" validate:"omitnil,enum"`
	Source         *domain.LeadSource    `json:"source" validate:"omitnil,enum"`
	Priority       *int                  `json:"priority" validate:"omitnil,min=1"`
	Remarks        *string               `json:"remarks" validate:"omitnil,max=2000"`
	NextFollowUpAt *time.Time            `json:"nextFollowUpAt"`
	SalesPersonID  *uint                 `json:"salesPersonId"`
}

func (d *EnquiryDraft) normalize() {
	d.CustomerName = trimmedValue(d.CustomerName)
	d.CustomerEmail = blankToNil(trimmed(d.CustomerEmail))
	d.CustomerPhone = blankToNil(trimmed(d.CustomerPhone))
	d.CustomerMobile = blankToNil(trimmed(d.CustomerMobile))
	if d.CustomerPhone == nil {
		d.CustomerPhone = d.CustomerMobile
	}
}

// EnquiryPatch is a field-present update: nil fields are left untouched.
// Enum fields can be changed but never cleared. An empty email or phone
// clears the stored value.
type EnquiryPatch struct {
	CustomerName   *string               `json:"customerName" validate:"omitnil,min=1,max=120"`
	CustomerEmail  *string               `json:"customerEmail" validate:"omitnil,max=150"`
	CustomerPhone  *string               `json:"customerPhone" validate:"omitnil,max=20"`
	CustomerMobile *string               `json:"customerMobile" validate:"omitnil,max=20"`
	Status         *domain.EnquiryStatus `json:"status" validate:"omitnil,enum"`
	InterestLevel  *domain.InterestLevel `json:"interestLevel" validate:"omitnil,enum"`
	PropertyType   *domain.PropertyType  `json:"propertyType" validate:"omitnil,enum"`
	BudgetRange    *domain.BudgetRange   `json:"budgetRange" validate:"omitnil,enum"`
	Source         *domain.LeadSource    `json:"source" validate:"omitnil,enum"`
	Priority       *int                  `json:"priority" validate:"omitnil,min=1"`
	Remarks        *string               `json:"remarks" validate:"omitnil,max=2000"`
	NextFollowUpAt *time.Time            `json:"nextFollowUpAt"`
	SalesPersonID  *uint                 `json:"salesPersonId"`
}

func (p *EnquiryPatch) normalize() {
	p.CustomerName = trimmed(p.CustomerName)
	p.CustomerEmail = trimmed(p.CustomerEmail)
	p.CustomerPhone = trimmed(p.CustomerPhone)
	p.CustomerMobile = trimmed(p.CustomerMobile)
	if p.CustomerPhone == nil {
		p.CustomerPhone = p.CustomerMobile
	}
}

// EnquiryService is the lifecycle manager: creation, merge updates, the
// narrow single-field mutators and deletion.
type EnquiryService struct {
	enquiries    EnquiryRepository
	salesPersons SalesPersonRepository
	settings
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(enquiries EnquiryRepository, salesPersons SalesPersonRepository, opts ...Option) *EnquiryService {
	return &EnquiryService{
		enquiries:    enquiries,
		salesPersons: salesPersons,
		settings:     newSettings(opts),
	}
}

// Create validates d and stores a new enquiry with status NEW and equal
// created/updated timestamps.
func (s *EnquiryService) Create(ctx context.Context, d EnquiryDraft) (*domain.Enquiry, error) {
	log := logger.For("ENQUIRY")
	d.normalize()
	log.WithField("customer", d.CustomerName).Info("Create request")

	if err := validateStruct(d); err != nil {
		log.WithError(err).Warn("Create failed: validation error")
		return nil, err
	}
	if err := validateEmail("customerEmail", d.CustomerEmail); err != nil {
		log.WithError(err).Warn("Create failed: validation error")
		return nil, err
	}
	if d.SalesPersonID != nil {
		if _, err := s.salesPersons.FindByID(ctx, *d.SalesPersonID); err != nil {
			log.WithError(err).Warn("Create failed: sales person lookup")
			return nil, err
		}
	}

	now := s.stamp()
	e := &domain.Enquiry{
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		CustomerPhone: d.CustomerPhone,
		Status:        domain.StatusNew,
		InterestLevel: d.InterestLevel,
		PropertyType:  d.PropertyType,
		BudgetRange:   d.BudgetRange,
		Source:        domain.SourceWebsite,
		Priority:      domain.DefaultPriority,
		AssignedToID:  d.SalesPersonID,
		Remarks:       d.Remarks,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if d.Source != nil {
		e.Source = *d.Source
	}
	if d.Priority != nil {
		e.Priority = *d.Priority
	}
	if d.NextFollowUpAt != nil {
		at := d.NextFollowUpAt.UTC()
		e.NextFollowUpAt = &at
	}

	if err := s.enquiries.Create(ctx, e); err != nil {
		log.WithError(err).Error("Create failed: database error")
		return nil, err
	}

	log.WithFields(map[string]any{"id": e.ID, "source": e.Source}).Info("Create successful")
	metrics.RecordEnquiryCreated(string(e.Source))
	return e, nil
}

// Get loads one enquiry.
func (s *EnquiryService) Get(ctx context.Context, id uint) (*domain.Enquiry, error) {
	return s.enquiries.FindByID(ctx, id)
}

// Update merges every non-nil field of p into the stored enquiry.
func (s *EnquiryService) Update(ctx context.Context, id uint, p EnquiryPatch) (*domain.Enquiry, error) {
	log := logger.For("ENQUIRY").WithField("id", id)
	p.normalize()
	log.Info("Update request")

	if err := validateStruct(p); err != nil {
		log.WithError(err).Warn("Update failed: validation error")
		return nil, err
	}
	if err := validateEmail("customerEmail", p.CustomerEmail); err != nil {
		log.WithError(err).Warn("Update failed: validation error")
		return nil, err
	}

	e, err := s.enquiries.FindByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Update failed: lookup")
		return nil, err
	}
	if p.SalesPersonID != nil {
		if _, err := s.salesPersons.FindByID(ctx, *p.SalesPersonID); err != nil {
			log.WithError(err).Warn("Update failed: sales person lookup")
			return nil, err
		}
	}

	p.apply(e)
	return s.save(ctx, e, "Update")
}

func (p EnquiryPatch) apply(e *domain.Enquiry) {
	if p.CustomerName != nil {
		e.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		e.CustomerEmail = blankToNil(p.CustomerEmail)
	}
	if p.CustomerPhone != nil {
		e.CustomerPhone = blankToNil(p.CustomerPhone)
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.InterestLevel != nil {
		e.InterestLevel = p.InterestLevel
	}
	if p.PropertyType != nil {
		e.PropertyType = p.PropertyType
	}
	if p.BudgetRange != nil {
		e.BudgetRange = p.BudgetRange
	}
	if p.Source != nil {
		e.Source = *p.Source
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
	if p.Remarks != nil {
		e.Remarks = p.Remarks
	}
	if p.NextFollowUpAt != nil {
		at := p.NextFollowUpAt.UTC()
		e.NextFollowUpAt = &at
	}
	if p.SalesPersonID != nil {
		e.AssignedToID = p.SalesPersonID
	}
}

// UpdateStatus sets the status. Any status may follow any other.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id uint, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	return s.Update(ctx, id, EnquiryPatch{Status: &status})
}

// UpdateInterestLevel sets the interest level.
func (s *EnquiryService) UpdateInterestLevel(ctx context.Context, id uint, level domain.InterestLevel) (*domain.Enquiry, error) {
	return s.Update(ctx, id, EnquiryPatch{InterestLevel: &level})
}

// AddRemarks replaces the remarks; it does not append.
func (s *EnquiryService) AddRemarks(ctx context.Context, id uint, remarks string) (*domain.Enquiry, error) {
	return s.Update(ctx, id, EnquiryPatch{Remarks: &remarks})
}

// ScheduleFollowUp sets the next follow-up instant.
func (s *EnquiryService) ScheduleFollowUp(ctx context.Context, id uint, at time.Time) (*domain.Enquiry, error) {
	return s.Update(ctx, id, EnquiryPatch{NextFollowUpAt: &at})
}

// Delete removes the enquiry unconditionally.
func (s *EnquiryService) Delete(ctx context.Context, id uint) error {
	log := logger.For("ENQUIRY").WithField("id", id)
	log.Info("Delete request")
	if err := s.enquiries.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Delete failed")
		return err
	}
	log.Info("Delete successful")
	return nil
}

// save refreshes updatedAt and writes e back.
func (s *EnquiryService) save(ctx context.Context, e *domain.Enquiry, op string) (*domain.Enquiry, error) {
	log := logger.For("ENQUIRY").WithField("id", e.ID)
	e.UpdatedAt = s.nextUpdate(e.UpdatedAt)
	if err := s.enquiries.Save(ctx, e); err != nil {
		log.WithError(err).Errorf("%s failed: database error", op)
		return nil, err
	}
	log.WithField("status", e.Status).Infof("%s successful", op)
	return e, nil
}

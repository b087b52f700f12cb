package services

import (
	"context"
	"strings"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
)

// SalesPersonInput is the full replacement body for a sales person.
// Mobile and IsAvailable are accepted as aliases.
type SalesPersonInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Email       *string `json:"email" validate:"omitnil,max=150"`
	Phone       *string `json:"phone" validate:"omitnil,max=20"`
	Mobile      *string `json:"mobile" validate:"omitnil,max=20"`
	Available   *bool   `json:"available"`
	IsAvailable *bool   `json:"isAvailable"`
	UserID      *uint   `json:"userId"`
}

func (in *SalesPersonInput) normalize() {
	in.Name = trimmedValue(in.Name)
	in.Email = blankToNil(trimmed(in.Email))
	in.Phone = blankToNil(trimmed(in.Phone))
	in.Mobile = blankToNil(trimmed(in.Mobile))
	if in.Phone == nil {
		in.Phone = in.Mobile
	}
	if in.Available == nil {
		in.Available = in.IsAvailable
	}
}

func (in *SalesPersonInput) available() bool {
	return in.Available == nil || *in.Available
}

// SalesPersonService manages sales representatives.
type SalesPersonService struct {
	salesPersons SalesPersonRepository
	settings
}

// NewSalesPersonService creates a new sales person service
func NewSalesPersonService(salesPersons SalesPersonRepository, opts ...Option) *SalesPersonService {
	return &SalesPersonService{salesPersons: salesPersons, settings: newSettings(opts)}
}

// Create stores a new sales person, available unless told otherwise.
func (s *SalesPersonService) Create(ctx context.Context, in SalesPersonInput) (*domain.SalesPerson, error) {
	log := logger.For("SALES_PERSON")
	in.normalize()
	log.WithField("name", in.Name).Info("Create request")

	if err := s.check(in); err != nil {
		log.WithError(err).Warn("Create failed: validation error")
		return nil, err
	}
	sp := &domain.SalesPerson{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Available: in.available(),
		UserID:    in.UserID,
		CreatedAt: s.stamp(),
	}
	if err := s.salesPersons.Create(ctx, sp); err != nil {
		log.WithError(err).Error("Create failed: database error")
		return nil, err
	}
	log.WithField("id", sp.ID).Info("Create successful")
	return sp, nil
}

func (s *SalesPersonService) Get(ctx context.Context, id uint) (*domain.SalesPerson, error) {
	return s.salesPersons.FindByID(ctx, id)
}

// Update replaces name, email, phone and availability. An absent
// availability resets to available.
func (s *SalesPersonService) Update(ctx context.Context, id uint, in SalesPersonInput) (*domain.SalesPerson, error) {
	log := logger.For("SALES_PERSON").WithField("id", id)
	in.normalize()
	log.Info("Update request")

	if err := s.check(in); err != nil {
		log.WithError(err).Warn("Update failed: validation error")
		return nil, err
	}
	sp, err := s.salesPersons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sp.Name = in.Name
	sp.Email = in.Email
	sp.Phone = in.Phone
	sp.Available = in.available()
	if in.UserID != nil {
		sp.UserID = in.UserID
	}
	if err := s.salesPersons.Save(ctx, sp); err != nil {
		log.WithError(err).Error("Update failed: database error")
		return nil, err
	}
	log.Info("Update successful")
	return sp, nil
}

// SetAvailability toggles whether auto-assignment may pick this person.
func (s *SalesPersonService) SetAvailability(ctx context.Context, id uint, available bool) (*domain.SalesPerson, error) {
	sp, err := s.salesPersons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sp.Available = available
	if err := s.salesPersons.Save(ctx, sp); err != nil {
		return nil, err
	}
	logger.For("SALES_PERSON").WithFields(map[string]any{"id": id, "available": available}).Info("Availability changed")
	return sp, nil
}

// Delete removes the sales person. Their enquiries keep pointing at the
// removed id.
func (s *SalesPersonService) Delete(ctx context.Context, id uint) error {
	log := logger.For("SALES_PERSON").WithField("id", id)
	if err := s.salesPersons.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Delete failed")
		return err
	}
	log.Info("Delete successful")
	return nil
}

// List pages through sales persons by name.
func (s *SalesPersonService) List(ctx context.Context, p domain.PageRequest) (domain.Page[domain.SalesPerson], error) {
	return s.Search(ctx, "", p)
}

// Search matches term against name, email and phone, ordered by name.
func (s *SalesPersonService) Search(ctx context.Context, term string, p domain.PageRequest) (domain.Page[domain.SalesPerson], error) {
	p, err := checkPage(p, domain.Sort{Column: "name"})
	if err != nil {
		return domain.Page[domain.SalesPerson]{}, err
	}
	p.Sort = domain.Sort{Column: "name"}
	rows, total, err := s.salesPersons.FindPage(ctx, strings.TrimSpace(term), p)
	if err != nil {
		return domain.Page[domain.SalesPerson]{}, err
	}
	return domain.NewPage(rows, p.Page, p.Size, total), nil
}

// Available lists sales persons open to auto-assignment, by id.
func (s *SalesPersonService) Available(ctx context.Context) ([]domain.SalesPerson, error) {
	return s.salesPersons.List(ctx, true)
}

// ByIDs loads the sales persons among ids that still exist.
func (s *SalesPersonService) ByIDs(ctx context.Context, ids []uint) ([]domain.SalesPerson, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.salesPersons.FindByIDs(ctx, ids)
}

func (s *SalesPersonService) CountTotal(ctx context.Context) (int64, error) {
	return s.salesPersons.Count(ctx, false)
}

func (s *SalesPersonService) CountAvailable(ctx context.Context) (int64, error) {
	return s.salesPersons.Count(ctx, true)
}

func (s *SalesPersonService) check(in SalesPersonInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	return validateEmail("email", in.Email)
}

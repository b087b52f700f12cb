package services

import (
	"context"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
	"enquirycrm/internal/metrics"
	apperrors "enquirycrm/pkg/errors"
)

// AssignmentService routes enquiries to sales persons, either to a named
// target or to the least-loaded available one.
//
// AutoAssign reads every candidate's load and then writes the assignment
// without holding a lock. Two concurrent calls can observe the same minimum
// and pick the same sales person; the skew corrects itself on later calls.
type AssignmentService struct {
	enquiries    EnquiryRepository
	salesPersons SalesPersonRepository
	users        UserDirectory
	settings
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(enquiries EnquiryRepository, salesPersons SalesPersonRepository, users UserDirectory, opts ...Option) *AssignmentService {
	return &AssignmentService{
		enquiries:    enquiries,
		salesPersons: salesPersons,
		users:        users,
		settings:     newSettings(opts),
	}
}

// Assign points the enquiry at targetID. targetID is tried as a sales person
// id first, then as a user id whose email matches a sales person. Availability
// is not checked.
func (s *AssignmentService) Assign(ctx context.Context, enquiryID, targetID uint) (*domain.Enquiry, error) {
	log := logger.For("ASSIGN").WithFields(map[string]any{"enquiry_id": enquiryID, "target_id": targetID})
	log.Info("Assign request")

	e, err := s.enquiries.FindByID(ctx, enquiryID)
	if err != nil {
		log.WithError(err).Warn("Assign failed: enquiry lookup")
		metrics.RecordAssignment("explicit", false)
		return nil, err
	}
	rep, err := s.resolve(ctx, targetID)
	if err != nil {
		log.WithError(err).Warn("Assign failed: target lookup")
		metrics.RecordAssignment("explicit", false)
		return nil, err
	}

	out, err := s.assign(ctx, e, rep)
	metrics.RecordAssignment("explicit", err == nil)
	if err != nil {
		log.WithError(err).Error("Assign failed: database error")
		return nil, err
	}
	log.WithField("sales_person_id", rep.ID).Info("Assign successful")
	return out, nil
}

func (s *AssignmentService) resolve(ctx context.Context, targetID uint) (*domain.SalesPerson, error) {
	rep, err := s.salesPersons.FindByID(ctx, targetID)
	if err == nil {
		return rep, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, targetID)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NotFound("sales person %d not found", targetID)
	}
	if err != nil {
		return nil, err
	}
	if user.Email == nil || *user.Email == "" {
		return nil, apperrors.NotFound("no sales person linked to user %d", targetID)
	}

	rep, err = s.salesPersons.FindByEmail(ctx, *user.Email)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NotFound("no sales person linked to user %d", targetID)
	}
	return rep, err
}

// AutoAssign gives the enquiry to the available sales person with the fewest
// assigned enquiries. Ties go to the lowest id. With nobody available it
// fails with a state error and changes nothing.
func (s *AssignmentService) AutoAssign(ctx context.Context, enquiryID uint) (*domain.Enquiry, error) {
	log := logger.For("ASSIGN").WithField("enquiry_id", enquiryID)
	log.Info("AutoAssign request")

	e, err := s.enquiries.FindByID(ctx, enquiryID)
	if err != nil {
		log.WithError(err).Warn("AutoAssign failed: enquiry lookup")
		metrics.RecordAssignment("auto", false)
		return nil, err
	}

	candidates, err := s.salesPersons.List(ctx, true)
	if err != nil {
		metrics.RecordAssignment("auto", false)
		return nil, err
	}
	if len(candidates) == 0 {
		log.Warn("AutoAssign failed: no available sales person")
		metrics.RecordAssignment("auto", false)
		return nil, apperrors.State("no available sales person for auto-assignment")
	}
	rep, load, err := s.leastLoaded(ctx, candidates)
	if err != nil {
		metrics.RecordAssignment("auto", false)
		return nil, err
	}

	out, err := s.assign(ctx, e, rep)
	metrics.RecordAssignment("auto", err == nil)
	if err != nil {
		log.WithError(err).Error("AutoAssign failed: database error")
		return nil, err
	}
	log.WithFields(map[string]any{"sales_person_id": rep.ID, "load": load}).Info("AutoAssign successful")
	return out, nil
}

// LeastLoaded returns the sales person with the fewest assigned enquiries,
// available or not.
func (s *AssignmentService) LeastLoaded(ctx context.Context) (*domain.SalesPerson, error) {
	all, err := s.salesPersons.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, apperrors.NotFound("no sales persons")
	}
	rep, _, err := s.leastLoaded(ctx, all)
	return rep, err
}

// leastLoaded counts on every call; no load counters are kept anywhere.
func (s *AssignmentService) leastLoaded(ctx context.Context, candidates []domain.SalesPerson) (*domain.SalesPerson, int64, error) {
	best := -1
	var bestLoad int64
	for i := range candidates {
		id := candidates[i].ID
		load, err := s.enquiries.Count(ctx, domain.EnquiryFilter{SalesPersonID: &id})
		if err != nil {
			return nil, 0, err
		}
		if best < 0 || load < bestLoad {
			best, bestLoad = i, load
		}
	}
	return &candidates[best], bestLoad, nil
}

func (s *AssignmentService) assign(ctx context.Context, e *domain.Enquiry, rep *domain.SalesPerson) (*domain.Enquiry, error) {
	id := rep.ID
	e.AssignedToID = &id
	e.UpdatedAt = s.nextUpdate(e.UpdatedAt)
	if err := s.enquiries.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

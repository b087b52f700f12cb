package httpapi

import (
	"context"

	"enquirycrm/internal/domain"
)

// salesPersonView adds the legacy field names clients still read.
type salesPersonView struct {
	domain.SalesPerson
	Mobile      *string `json:"mobile"`
	IsAvailable bool    `json:"isAvailable"`
}

func newSalesPersonView(sp domain.SalesPerson) salesPersonView {
	return salesPersonView{SalesPerson: sp, Mobile: sp.Phone, IsAvailable: sp.Available}
}

func salesPersonViews(rows []domain.SalesPerson) []salesPersonView {
	out := make([]salesPersonView, 0, len(rows))
	for _, sp := range rows {
		out = append(out, newSalesPersonView(sp))
	}
	return out
}

// enquiryView embeds the assigned sales person when it still exists.
type enquiryView struct {
	domain.Enquiry
	CustomerMobile *string          `json:"customerMobile"`
	AssignedTo     *salesPersonView `json:"assignedTo"`
}

func (s *Server) enquiryViews(ctx context.Context, rows []domain.Enquiry) ([]enquiryView, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, e := range rows {
		if e.AssignedToID != nil && !seen[*e.AssignedToID] {
			seen[*e.AssignedToID] = true
			ids = append(ids, *e.AssignedToID)
		}
	}
	reps, err := s.svc.SalesPersons.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]salesPersonView, len(reps))
	for _, sp := range reps {
		byID[sp.ID] = newSalesPersonView(sp)
	}

	out := make([]enquiryView, 0, len(rows))
	for _, e := range rows {
		v := enquiryView{Enquiry: e, CustomerMobile: e.CustomerPhone}
		if e.AssignedToID != nil {
			if sp, ok := byID[*e.AssignedToID]; ok {
				v.AssignedTo = &sp
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Server) enquiryView(ctx context.Context, e *domain.Enquiry) (enquiryView, error) {
	views, err := s.enquiryViews(ctx, []domain.Enquiry{*e})
	if err != nil {
		return enquiryView{}, err
	}
	return views[0], nil
}

func (s *Server) enquiryPage(ctx context.Context, p domain.Page[domain.Enquiry]) (domain.Page[enquiryView], error) {
	views, err := s.enquiryViews(ctx, p.Content)
	if err != nil {
		return domain.Page[enquiryView]{}, err
	}
	return domain.Page[enquiryView]{
		Content:       views,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}, nil
}

func salesPersonPage(p domain.Page[domain.SalesPerson]) domain.Page[salesPersonView] {
	return domain.Page[salesPersonView]{
		Content:       salesPersonViews(p.Content),
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

package httpapi

import (
	"context"
	"io"
	"net/http"
	"strings"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/services"
	apperrors "enquirycrm/pkg/errors"
)

const (
	listPageSize   = 100
	searchPageSize = 10
	maxRemarksBody = 64 << 10
)

func (s *Server) mountEnquiries() {
	base := apiPrefix + "/enquiries"
	s.private(http.MethodGet, base, s.listEnquiries)
	s.public(http.MethodPost, base, s.createEnquiry)
	s.private(http.MethodGet, base+"/search", s.searchEnquiries)
	s.private(http.MethodGet, base+"/filtered", s.filterEnquiries)
	s.private(http.MethodGet, base+"/unassigned", s.shortcut(s.svc.Query.Unassigned))
	s.private(http.MethodGet, base+"/active", s.shortcut(s.svc.Query.Active))
	s.private(http.MethodGet, base+"/hot-leads", s.shortcut(s.svc.Query.HotLeads))
	s.private(http.MethodGet, base+"/by-status/{status}", s.enquiriesByStatus)
	s.private(http.MethodGet, base+"/by-interest-level/{level}", s.enquiriesByInterestLevel)
	s.private(http.MethodGet, base+"/by-sales-person/{salesPersonId}", s.enquiriesBySalesPerson)
	s.private(http.MethodGet, base+"/count/total", s.countEnquiries)
	s.private(http.MethodGet, base+"/count/by-status/{status}", s.countEnquiriesByStatus)
	s.private(http.MethodGet, base+"/count/by-interest-level/{level}", s.countEnquiriesByInterestLevel)
	s.private(http.MethodGet, base+"/count/by-sales-person/{salesPersonId}", s.countEnquiriesBySalesPerson)
	s.private(http.MethodGet, base+"/{id}", s.getEnquiry)
	s.private(http.MethodPut, base+"/{id}", s.updateEnquiry)
	s.private(http.MethodDelete, base+"/{id}", s.deleteEnquiry)
	s.private(http.MethodPost, base+"/{id}/assign/{targetId}", s.assignEnquiry)
	s.private(http.MethodPost, base+"/{id}/auto-assign", s.autoAssignEnquiry)
	s.private(http.MethodPut, base+"/{id}/status", s.updateEnquiryStatus)
	s.private(http.MethodPut, base+"/{id}/interest-level", s.updateEnquiryInterestLevel)
	s.private(http.MethodPost, base+"/{id}/remarks", s.addEnquiryRemarks)
	s.private(http.MethodPost, base+"/{id}/schedule-follow-up", s.scheduleEnquiryFollowUp)
}

func (s *Server) writeEnquiry(w http.ResponseWriter, r *http.Request, status int, e *domain.Enquiry) error {
	v, err := s.enquiryView(r.Context(), e)
	if err != nil {
		return err
	}
	return writeJSON(w, r, status, v)
}

func (s *Server) writeEnquiryPage(w http.ResponseWriter, r *http.Request, p domain.Page[domain.Enquiry]) error {
	out, err := s.enquiryPage(r.Context(), p)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) writeEnquiryList(w http.ResponseWriter, r *http.Request, rows []domain.Enquiry) error {
	out, err := s.enquiryViews(r.Context(), rows)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) listEnquiries(w http.ResponseWriter, r *http.Request) error {
	p, err := pageRequest(r, listPageSize, domain.ParseEnquirySort)
	if err != nil {
		return err
	}
	page, err := s.svc.Query.List(r.Context(), p)
	if err != nil {
		return err
	}
	return s.writeEnquiryPage(w, r, page)
}

func (s *Server) createEnquiry(w http.ResponseWriter, r *http.Request) error {
	var d services.EnquiryDraft
	if err := decode(r, &d); err != nil {
		return err
	}
	e, err := s.svc.Enquiries.Create(r.Context(), d)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusCreated, e)
}

func (s *Server) searchEnquiries(w http.ResponseWriter, r *http.Request) error {
	p, err := pageRequest(r, searchPageSize, domain.ParseEnquirySort)
	if err != nil {
		return err
	}
	page, err := s.svc.Query.Search(r.Context(), r.URL.Query().Get("searchTerm"), p)
	if err != nil {
		return err
	}
	return s.writeEnquiryPage(w, r, page)
}

func (s *Server) filterEnquiries(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	var f services.FilterParams
	if raw := q.Get("status"); raw != "" {
		st, err := domain.ParseEnquiryStatus(raw)
		if err != nil {
			return err
		}
		f.Status = &st
	}
	if raw := q.Get("interestLevel"); raw != "" {
		lvl, err := domain.ParseInterestLevel(raw)
		if err != nil {
			return err
		}
		f.InterestLevel = &lvl
	}
	var err error
	if f.SalesPersonID, err = queryUint(r, "salesPersonId"); err != nil {
		return err
	}
	if f.ActiveOnly, err = queryBool(r, "activeOnly", false); err != nil {
		return err
	}
	if f.From, err = s.queryTime(r, "from"); err != nil {
		return err
	}
	if f.To, err = s.queryTime(r, "to"); err != nil {
		return err
	}
	p, err := pageRequest(r, searchPageSize, domain.ParseEnquirySort)
	if err != nil {
		return err
	}
	page, err := s.svc.Query.Filtered(r.Context(), f, p)
	if err != nil {
		return err
	}
	return s.writeEnquiryPage(w, r, page)
}

// shortcut serves one of the fixed listings such as hot leads.
func (s *Server) shortcut(list func(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error)) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		p, err := pageRequest(r, listPageSize, domain.ParseEnquirySort)
		if err != nil {
			return err
		}
		page, err := list(r.Context(), p)
		if err != nil {
			return err
		}
		return s.writeEnquiryPage(w, r, page)
	}
}

func (s *Server) enquiriesByStatus(w http.ResponseWriter, r *http.Request) error {
	st, err := domain.ParseEnquiryStatus(s.pathValue(r, "status"))
	if err != nil {
		return err
	}
	return s.shortcut(func(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
		return s.svc.Query.ByStatus(ctx, st, p)
	})(w, r)
}

func (s *Server) enquiriesByInterestLevel(w http.ResponseWriter, r *http.Request) error {
	lvl, err := domain.ParseInterestLevel(s.pathValue(r, "level"))
	if err != nil {
		return err
	}
	return s.shortcut(func(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
		return s.svc.Query.ByInterestLevel(ctx, lvl, p)
	})(w, r)
}

func (s *Server) enquiriesBySalesPerson(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "salesPersonId")
	if err != nil {
		return err
	}
	return s.shortcut(func(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
		return s.svc.Query.BySalesPerson(ctx, id, p)
	})(w, r)
}

func writeCount(w http.ResponseWriter, r *http.Request, n int64, err error) error {
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, n)
}

func (s *Server) countEnquiries(w http.ResponseWriter, r *http.Request) error {
	n, err := s.svc.Query.CountTotal(r.Context())
	return writeCount(w, r, n, err)
}

func (s *Server) countEnquiriesByStatus(w http.ResponseWriter, r *http.Request) error {
	st, err := domain.ParseEnquiryStatus(s.pathValue(r, "status"))
	if err != nil {
		return err
	}
	n, err := s.svc.Query.CountByStatus(r.Context(), st)
	return writeCount(w, r, n, err)
}

func (s *Server) countEnquiriesByInterestLevel(w http.ResponseWriter, r *http.Request) error {
	lvl, err := domain.ParseInterestLevel(s.pathValue(r, "level"))
	if err != nil {
		return err
	}
	n, err := s.svc.Query.CountByInterestLevel(r.Context(), lvl)
	return writeCount(w, r, n, err)
}

func (s *Server) countEnquiriesBySalesPerson(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "salesPersonId")
	if err != nil {
		return err
	}
	n, err := s.svc.Query.CountBySalesPerson(r.Context(), id)
	return writeCount(w, r, n, err)
}

func (s *Server) getEnquiry(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	e, err := s.svc.Enquiries.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

func (s *Server) updateEnquiry(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	var p services.EnquiryPatch
	if err := decode(r, &p); err != nil {
		return err
	}
	e, err := s.svc.Enquiries.Update(r.Context(), id, p)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

func (s *Server) deleteEnquiry(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	if err := s.svc.Enquiries.Delete(r.Context(), id); err != nil {
		return err
	}
	return noContent(w)
}

func (s *Server) assignEnquiry(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	target, err := s.pathID(r, "targetId")
	if err != nil {
		return err
	}
	e, err := s.svc.Assignment.Assign(r.Context(), id, target)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

func (s *Server) autoAssignEnquiry(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	e, err := s.svc.Assignment.AutoAssign(r.Context(), id)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

func (s *Server) updateEnquiryStatus(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	st, err := domain.ParseEnquiryStatus(r.URL.Query().Get("status"))
	if err != nil {
		return err
	}
	e, err := s.svc.Enquiries.UpdateStatus(r.Context(), id, st)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

func (s *Server) updateEnquiryInterestLevel(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	lvl, err := domain.ParseInterestLevel(r.URL.Query().Get("interestLevel"))
	if err != nil {
		return err
	}
	e, err := s.svc.Enquiries.UpdateInterestLevel(r.Context(), id, lvl)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

func (s *Server) addEnquiryRemarks(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRemarksBody))
	if err != nil {
		return apperrors.Validation("failed to read remarks")
	}
	e, err := s.svc.Enquiries.AddRemarks(r.Context(), id, strings.TrimSpace(string(body)))
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

func (s *Server) scheduleEnquiryFollowUp(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	at, err := s.queryTime(r, "followUpDate")
	if err != nil {
		return err
	}
	if at == nil {
		return apperrors.Validation("followUpDate is required")
	}
	e, err := s.svc.Enquiries.ScheduleFollowUp(r.Context(), id, *at)
	if err != nil {
		return err
	}
	return s.writeEnquiry(w, r, http.StatusOK, e)
}

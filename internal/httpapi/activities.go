package httpapi

import (
	"net/http"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/services"
	apperrors "enquirycrm/pkg/errors"
)

const defaultRecentActivities = 10

func (s *Server) mountActivities() {
	base := apiPrefix + "/sales-activities"
	s.private(http.MethodGet, base, s.listActivities)
	s.private(http.MethodPost, base, s.logActivity)
	s.private(http.MethodPost, base+"/log", s.logActivity)
	s.private(http.MethodGet, base+"/recent", s.recentActivities)
	s.private(http.MethodGet, base+"/search", s.searchActivities)
	s.private(http.MethodGet, base+"/by-date-range", s.activitiesByDateRange)
	s.private(http.MethodGet, base+"/by-enquiry/{enquiryId}", s.activitiesByEnquiry)
	s.private(http.MethodGet, base+"/by-sales-person/{salesPersonId}", s.activitiesBySalesPerson)
	s.private(http.MethodGet, base+"/by-type/{activityType}", s.activitiesByType)
	s.private(http.MethodGet, base+"/count/total", s.countActivities)
	s.private(http.MethodGet, base+"/count/by-type/{activityType}", s.countActivitiesByType)
	s.private(http.MethodGet, base+"/count/by-sales-person/{salesPersonId}", s.countActivitiesBySalesPerson)
	s.private(http.MethodGet, base+"/{id}", s.getActivity)
	s.private(http.MethodPut, base+"/{id}", s.updateActivity)
	s.private(http.MethodDelete, base+"/{id}", s.deleteActivity)
}

func (s *Server) findActivities(w http.ResponseWriter, r *http.Request, f domain.ActivityFilter, defSize int) error {
	p, err := pageRequest(r, defSize, services.ParseActivitySort)
	if err != nil {
		return err
	}
	page, err := s.svc.Activities.Find(r.Context(), f, p)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) error {
	return s.findActivities(w, r, domain.ActivityFilter{}, listPageSize)
}

func (s *Server) searchActivities(w http.ResponseWriter, r *http.Request) error {
	return s.findActivities(w, r, domain.ActivityFilter{Term: r.URL.Query().Get("searchTerm")}, searchPageSize)
}

func (s *Server) activitiesByDateRange(w http.ResponseWriter, r *http.Request) error {
	from, err := s.queryTime(r, "startDate")
	if err != nil {
		return err
	}
	to, err := s.queryTime(r, "endDate")
	if err != nil {
		return err
	}
	if from == nil || to == nil {
		return apperrors.Validation("startDate and endDate are required")
	}
	return s.findActivities(w, r, domain.ActivityFilter{From: from, To: to}, searchPageSize)
}

func (s *Server) logActivity(w http.ResponseWriter, r *http.Request) error {
	var in services.ActivityInput
	if err := decode(r, &in); err != nil {
		return err
	}
	a, err := s.svc.Activities.Log(r.Context(), in)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusCreated, a)
}

func (s *Server) getActivity(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	a, err := s.svc.Activities.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, a)
}

func (s *Server) updateActivity(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	var in services.ActivityInput
	if err := decode(r, &in); err != nil {
		return err
	}
	a, err := s.svc.Activities.Update(r.Context(), id, in)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, a)
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	if err := s.svc.Activities.Delete(r.Context(), id); err != nil {
		return err
	}
	return noContent(w)
}

func (s *Server) recentActivities(w http.ResponseWriter, r *http.Request) error {
	limit, err := queryInt(r, "limit", defaultRecentActivities)
	if err != nil {
		return err
	}
	rows, err := s.svc.Activities.Recent(r.Context(), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) activitiesByEnquiry(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "enquiryId")
	if err != nil {
		return err
	}
	rows, err := s.svc.Activities.ByEnquiry(r.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) activitiesBySalesPerson(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "salesPersonId")
	if err != nil {
		return err
	}
	rows, err := s.svc.Activities.BySalesPerson(r.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) activitiesByType(w http.ResponseWriter, r *http.Request) error {
	t, err := domain.ParseActivityType(s.pathValue(r, "activityType"))
	if err != nil {
		return err
	}
	rows, err := s.svc.Activities.ByType(r.Context(), t)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) countActivities(w http.ResponseWriter, r *http.Request) error {
	n, err := s.svc.Activities.Count(r.Context(), domain.ActivityFilter{})
	return writeCount(w, r, n, err)
}

func (s *Server) countActivitiesByType(w http.ResponseWriter, r *http.Request) error {
	t, err := domain.ParseActivityType(s.pathValue(r, "activityType"))
	if err != nil {
		return err
	}
	n, err := s.svc.Activities.Count(r.Context(), domain.ActivityFilter{ActivityType: &t})
	return writeCount(w, r, n, err)
}

func (s *Server) countActivitiesBySalesPerson(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "salesPersonId")
	if err != nil {
		return err
	}
	n, err := s.svc.Activities.Count(r.Context(), domain.ActivityFilter{SalesPersonID: &id})
	return writeCount(w, r, n, err)
}

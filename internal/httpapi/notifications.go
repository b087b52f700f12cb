package httpapi

import (
	"net/http"
)

// upcomingDays is the window of the upcoming follow-ups listing.
const upcomingDays = 7

func (s *Server) mountNotifications() {
	base := apiPrefix + "/notifications"
	s.private(http.MethodGet, base+"/follow-up/{salesPersonId}", s.followUpsToday)
	s.private(http.MethodGet, base+"/upcoming/{salesPersonId}", s.followUpsUpcoming)
	s.private(http.MethodGet, base+"/due", s.followUpsDue)
}

func (s *Server) followUpsToday(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "salesPersonId")
	if err != nil {
		return err
	}
	rows, err := s.svc.FollowUps.DueTodayFor(r.Context(), id)
	if err != nil {
		return err
	}
	return s.writeEnquiryList(w, r, rows)
}

func (s *Server) followUpsUpcoming(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "salesPersonId")
	if err != nil {
		return err
	}
	rows, err := s.svc.FollowUps.DueWithinDays(r.Context(), id, upcomingDays)
	if err != nil {
		return err
	}
	return s.writeEnquiryList(w, r, rows)
}

func (s *Server) followUpsDue(w http.ResponseWriter, r *http.Request) error {
	id, err := queryUint(r, "salesPersonId")
	if err != nil {
		return err
	}
	days, err := queryInt(r, "days", 0)
	if err != nil {
		return err
	}
	rows, err := s.svc.FollowUps.Due(r.Context(), id, days)
	if err != nil {
		return err
	}
	return s.writeEnquiryList(w, r, rows)
}

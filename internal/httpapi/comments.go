package httpapi

import (
	"net/http"

	"enquirycrm/internal/services"
)

func (s *Server) mountComments() {
	base := apiPrefix + "/enquiries"
	s.private(http.MethodGet, base+"/{id}/comments", s.listComments)
	s.private(http.MethodPost, base+"/{id}/comments", s.addComment)
	s.private(http.MethodGet, base+"/{id}/comments/count", s.countComments)
	s.private(http.MethodDelete, base+"/comments/{commentId}", s.deleteComment)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	rows, err := s.svc.Comments.List(r.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	var in services.CommentInput
	if err := decode(r, &in); err != nil {
		return err
	}
	if in.UserID == nil {
		if claims, ok := ClaimsFrom(r.Context()); ok && claims.UserID != 0 {
			uid := claims.UserID
			in.UserID = &uid
		}
	}
	c, err := s.svc.Comments.Add(r.Context(), id, in)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusCreated, c)
}

func (s *Server) countComments(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	n, err := s.svc.Comments.Count(r.Context(), id)
	return writeCount(w, r, n, err)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "commentId")
	if err != nil {
		return err
	}
	if err := s.svc.Comments.Delete(r.Context(), id); err != nil {
		return err
	}
	return noContent(w)
}

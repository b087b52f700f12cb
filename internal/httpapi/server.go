// Package httpapi exposes the enquiry services over JSON/HTTP on a goa muxer.
package httpapi

import (
	"net/http"
	"time"

	"enquirycrm/internal/services"
	"enquirycrm/internal/util"

	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"
)

const apiPrefix = "/api/v1"

// Services bundles everything the handlers call.
type Services struct {
	Enquiries    *services.EnquiryService
	Assignment   *services.AssignmentService
	Query        *services.QueryService
	FollowUps    *services.FollowUpScanner
	SalesPersons *services.SalesPersonService
	Comments     *services.CommentService
	Activities   *services.ActivityService
	Auth         *services.AuthService
	Health       *services.HealthService
}

// TokenValidator checks bearer tokens. *util.TokenManager satisfies it.
type TokenValidator interface {
	ValidateToken(token string) (*util.Claims, error)
}

// Server routes API requests to the services.
type Server struct {
	svc     Services
	tokens  TokenValidator
	loc     *time.Location
	mux     goahttp.Muxer
	handler http.Handler
}

// handlerFunc is an HTTP handler whose error is rendered by writeError.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// New mounts every route. Dates without a zone in query strings are read in
// loc.
func New(svc Services, tokens TokenValidator, loc *time.Location) *Server {
	if loc == nil {
		loc = time.Local
	}
	s := &Server{svc: svc, tokens: tokens, loc: loc, mux: goahttp.NewMuxer()}
	s.mountHealth()
	s.mountAuth()
	s.mountEnquiries()
	s.mountComments()
	s.mountSalesPersons()
	s.mountActivities()
	s.mountNotifications()

	var h http.Handler = s.mux
	h = middleware.PopulateRequestContext()(h)
	h = middleware.RequestID(middleware.UseXRequestIDHeaderOption(true))(h)
	s.handler = h
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) public(method, pattern string, h handlerFunc) {
	s.mux.Handle(method, pattern, s.wrap(h))
}

func (s *Server) private(method, pattern string, h handlerFunc) {
	s.mux.Handle(method, pattern, s.requireAuth(s.wrap(h)))
}

func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"enquirycrm/internal/services"
	"enquirycrm/internal/util"
	apperrors "enquirycrm/pkg/errors"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFrom returns the claims of the authenticated caller.
func ClaimsFrom(ctx context.Context) (*util.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*util.Claims)
	return c, ok
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, r, apperrors.New(apperrors.ErrCodeUnauthorized, "authorization header required"))
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			writeError(w, r, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid authorization header format"))
			return
		}
		claims, err := s.tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, util.ErrExpiredToken) {
				msg = "token expired"
			}
			writeError(w, r, apperrors.New(apperrors.ErrCodeUnauthorized, msg))
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) mountAuth() {
	s.public(http.MethodPost, apiPrefix+"/auth/login", s.login)
	s.private(http.MethodGet, apiPrefix+"/auth/me", s.me)
	s.private(http.MethodPost, apiPrefix+"/auth/users", s.createUser)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return apperrors.Validation("username and password are required")
	}
	res, err := s.svc.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) error {
	claims, _ := ClaimsFrom(r.Context())
	user, err := s.svc.Auth.Me(r.Context(), claims.Username)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) error {
	claims, _ := ClaimsFrom(r.Context())
	if claims == nil || !claims.IsAdmin() {
		return apperrors.New(apperrors.ErrCodeForbidden, "admin role required")
	}
	var in services.NewUser
	if err := decode(r, &in); err != nil {
		return err
	}
	user, err := s.svc.Auth.CreateUser(r.Context(), in)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) mountHealth() {
	s.public(http.MethodGet, "/health", s.health)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	res, ok := s.svc.Health.Check(r.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	return writeJSON(w, r, status, res)
}

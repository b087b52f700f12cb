package services

import (
	"context"
	"time"
)

// HealthResult is the body of the health endpoint.
type HealthResult struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// HealthService reports liveness and database reachability.
type HealthService struct {
	name    string
	version string
	ping    func(context.Context) error
}

// NewHealthService creates a new health service
func NewHealthService(name, version string, ping func(context.Context) error) *HealthService {
	return &HealthService{name: name, version: version, ping: ping}
}

// Check pings the database with a short timeout. The returned bool is false
// when the database is unreachable.
func (s *HealthService) Check(ctx context.Context) (*HealthResult, bool) {
	res := &HealthResult{Status: "healthy", Service: s.name, Version: s.version, Database: "up"}
	if s.ping == nil {
		return res, true
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.ping(ctx); err != nil {
		res.Status = "degraded"
		res.Database = "down"
		return res, false
	}
	return res, true
}

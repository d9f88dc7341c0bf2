package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB Pinger
}

// NewService constructs a new health service. db may be nil when resumes are
// kept in memory.
func NewService(db Pinger) *Service {
	return &Service{DB: db}
}

// Status reports overall health and the state of the storage backend.
func (s *Service) Status(ctx context.Context) (bool, map[string]any) {
	payload := map[string]any{"ok": true, "storage": "memory"}
	if s == nil || s.DB == nil {
		return true, payload
	}

	payload["storage"] = "postgres"
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		payload["ok"] = false
		payload["error"] = err.Error()
		return false, payload
	}
	return true, payload
}

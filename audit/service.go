// api/audit/service.go
package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	logger "github.com/spop-ops/commander/api/logging"
)

type Service interface {
	RecordMutation(ctx context.Context, userID uint, action, entityType string, entityID interface{}, source string)
	QueryLogs(ctx context.Context, from, to time.Time, userID, entityType string) ([]MutationLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RecordMutation is fire-and-forget: audit failures are logged, never
// propagated to the write path.
func (s *service) RecordMutation(ctx context.Context, userID uint, action, entityType string, entityID interface{}, source string) {
	log := MutationLog{
		Timestamp:  time.Now().UTC(),
		UserID:     fmt.Sprint(userID),
		Action:     action,
		EntityType: entityType,
		EntityID:   fmt.Sprint(entityID),
		Source:     source,
	}
	if err := s.repo.LogMutation(ctx, log); err != nil {
		logger.Warn("Failed to record mutation audit log",
			zap.Error(err),
			zap.String("action", action),
			zap.String("entityType", entityType))
	}
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, userID, entityType string) ([]MutationLog, error) {
	return s.repo.QueryLogs(ctx, from, to, userID, entityType)
}

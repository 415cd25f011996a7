package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"taxengine/internal/model"
	"taxengine/internal/repository"
)

type AuditLogResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Action    string `json:"action"`
	ProfileID string `json:"profile_id"`
	RuleCode  string `json:"rule_code,omitempty"`
	Version   int64  `json:"version"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

type AuditService interface {
	GetProfileAuditLogs(ctx context.Context, profileID uuid.UUID, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// GetProfileAuditLogs returns one page of a profile's change history, newest first
func (s *auditService) GetProfileAuditLogs(ctx context.Context, profileID uuid.UUID, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.ListByProfile(ctx, profileID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := lo.Map(logs, func(l model.AuditLog, _ int) AuditLogResponse {
		userID := "system"
		if l.UserID != nil {
			userID = l.UserID.String()
		}
		return AuditLogResponse{
			ID:        l.ID.String(),
			UserID:    userID,
			Action:    l.Action,
			ProfileID: l.ProfileID.String(),
			RuleCode:  l.RuleCode,
			Version:   l.Version,
			Details:   l.Details,
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	})
	return res, total, nil
}

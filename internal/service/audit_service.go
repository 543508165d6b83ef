package service

import (
	"context"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
)

// AuditService records security-relevant actions. Failures are logged and
// never surface to the caller.
type AuditService struct {
	repo AuditStore
}

// NewAuditService creates a new audit service. A nil store disables auditing.
func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, userID int64, action, category string, details map[string]interface{}) {
	s.LogWithRequest(ctx, userID, action, category, "", "", details)
}

// LogWithRequest creates an audit log with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, userID int64, action, category, ip, userAgent string, details map[string]interface{}) {
	if s == nil || s.repo == nil {
		return
	}

	log := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogLogin logs a successful login
func (s *AuditService) LogLogin(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionLogin, domain.AuditCategoryAuth, ip, userAgent, nil)
}

// LogLoginFailed records a rejected login attempt. The user may not exist.
func (s *AuditService) LogLoginFailed(ctx context.Context, email, ip, userAgent string) {
	s.LogWithRequest(ctx, 0, domain.AuditActionLoginFailed, domain.AuditCategoryAuth, ip, userAgent,
		map[string]interface{}{"email": email})
}

func (s *AuditService) LogRegister(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionRegister, domain.AuditCategoryAuth, ip, userAgent, nil)
}

func (s *AuditService) LogLogout(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionLogout, domain.AuditCategoryAuth, ip, userAgent, nil)
}

// LogTask logs a task mutation. userID is zero for anonymous actors.
func (s *AuditService) LogTask(ctx context.Context, userID int64, action string, taskID int64) {
	s.Log(ctx, userID, action, domain.AuditCategoryTask, map[string]interface{}{"task_id": taskID})
}

// LogAdminVerify logs an admin password check.
func (s *AuditService) LogAdminVerify(ctx context.Context, ok bool, ip, userAgent string) {
	action := domain.AuditActionAdminVerify
	if !ok {
		action = domain.AuditActionAdminVerifyFailed
	}
	s.LogWithRequest(ctx, 0, action, domain.AuditCategoryAdmin, ip, userAgent, nil)
}

package domain

import "time"

// AuditLog is an append-only record of security-relevant actions.
// UserID is zero when the actor could not be identified.
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit action categories
const (
	AuditCategoryAuth  = "auth"
	AuditCategoryTask  = "task"
	AuditCategoryAdmin = "admin"
)

// Audit actions
const (
	// Auth actions
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionRegister    = "register"
	AuditActionLogout      = "logout"

	// Task actions
	AuditActionTaskCreate   = "task_create"
	AuditActionTaskComplete = "task_complete"
	AuditActionTaskDelete   = "task_delete"

	// Admin actions
	AuditActionAdminVerify       = "admin_verify"
	AuditActionAdminVerifyFailed = "admin_verify_failed"
)

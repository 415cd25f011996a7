package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateTaxProfile     = "CREATE_TAX_PROFILE"
	ActionDeactivateTaxProfile = "DEACTIVATE_TAX_PROFILE"
	ActionSetGlobalDefault     = "SET_GLOBAL_DEFAULT_TAX_PROFILE"
	ActionAddTaxRate           = "ADD_TAX_RATE"
	ActionUpdateTaxRate        = "UPDATE_TAX_RATE"
	ActionRemoveTaxRate        = "REMOVE_TAX_RATE"
	ActionAddTaxExemption      = "ADD_TAX_EXEMPTION"
	ActionUpdateTaxExemption   = "UPDATE_TAX_EXEMPTION"
	ActionRemoveTaxExemption   = "REMOVE_TAX_EXEMPTION"
)

// AuditLog tracks who changed which tax profile, and how
type AuditLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil for automated changes
	Action    string     `gorm:"type:varchar(50);not null;index" json:"action"`
	ProfileID uuid.UUID  `gorm:"type:uuid;not null;index" json:"profile_id"`
	RuleCode  string     `gorm:"type:varchar(50)" json:"rule_code,omitempty"` // rate or exemption code, if any
	Version   int64      `gorm:"not null" json:"version"`                     // profile version after the change
	Details   string     `gorm:"type:jsonb" json:"details"`                   // serialized request payload
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

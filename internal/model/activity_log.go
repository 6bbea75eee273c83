package model

import "github.com/google/uuid"

// Activity kinds
const (
	ActivitySale      = "sale"
	ActivityDebt      = "debt"
	ActivityPayment   = "payment"
	ActivityInventory = "inventory"
	ActivityAuth      = "auth"
	ActivityUser      = "user"
)

// ActivityLog is a free-text audit trail entry written after each mutating
// operation. Logging is fire-and-forget and never blocks the request.
type ActivityLog struct {
	BaseModel
	UserID  *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User    *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action  string     `gorm:"type:varchar(100);not null" json:"action"`
	Details string     `gorm:"type:text" json:"details"`
	Kind    string     `gorm:"type:varchar(20);index" json:"kind"`
}

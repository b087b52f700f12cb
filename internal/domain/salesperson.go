package domain

import (
	"time"

	"gorm.io/gorm"
)

// SalesPerson is a representative eligible for enquiry assignment.
type SalesPerson struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Email     *string   `gorm:"size:150;index" json:"email"`
	Phone     *string   `gorm:"size:20" json:"phone"`
	Available bool      `gorm:"not null" json:"available"`
	UserID    *uint     `gorm:"index" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null" json:"createdAt"`
}

// TableName specifies the table name for SalesPerson
func (SalesPerson) TableName() string {
	return "sales_persons"
}

// BeforeCreate hook
func (s *SalesPerson) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return nil
}

package domain

import (
	"time"

	"gorm.io/gorm"
)

// DefaultPriority is applied to enquiries created without an explicit priority.
const DefaultPriority = 1

// Enquiry is a customer lead tracked through the sales lifecycle.
//
// AssignedToID is a weak reference: the sales person it names may have been
// deleted, and nothing repairs it when that happens.
type Enquiry struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CustomerName   string         `gorm:"size:120;not null" json:"customerName"`
	CustomerEmail  *string        `gorm:"size:150" json:"customerEmail"`
	CustomerPhone  *string        `gorm:"size:20" json:"customerPhone"`
	Status         EnquiryStatus  `gorm:"size:32;not null;index" json:"status"`
	InterestLevel  *InterestLevel `gorm:"size:16;index" json:"interestLevel"`
	PropertyType   *PropertyType  `gorm:"size:32" json:"propertyType"`
	BudgetRange    *BudgetRange   `gorm:"size:32" json:"budgetRange"`
	Source         LeadSource     `gorm:"size:16;not null" json:"source"`
	Priority       int            `gorm:"not null" json:"priority"`
	AssignedToID   *uint          `gorm:"column:sales_person_id;index" json:"salesPersonId"`
	Remarks        *string        `gorm:"size:2000" json:"remarks"`
	CreatedAt      time.Time      `gorm:"autoCreateTime:false;not null;index" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
	NextFollowUpAt *time.Time     `gorm:"index" json:"nextFollowUpAt"`
}

// TableName specifies the table name for Enquiry
func (Enquiry) TableName() string {
	return "enquiries"
}

// BeforeCreate fills the lifecycle defaults.
func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.Status == "" {
		e.Status = StatusNew
	}
	if e.Source == "" {
		e.Source = SourceWebsite
	}
	if e.Priority == 0 {
		e.Priority = DefaultPriority
	}
	return nil
}

// IsAssigned reports whether the enquiry currently points at a sales person.
func (e *Enquiry) IsAssigned() bool {
	return e.AssignedToID != nil
}

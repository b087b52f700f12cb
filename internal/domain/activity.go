package domain

import "time"

// Activity is one entry in the sales activity log.
type Activity struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	EnquiryID     *uint        `gorm:"index" json:"enquiryId"`
	SalesPersonID *uint        `gorm:"index" json:"salesPersonId"`
	ActivityType  ActivityType `gorm:"size:16;not null;index" json:"activityType"`
	Notes         *string      `gorm:"size:1000" json:"notes"`
	ActivityDate  time.Time    `gorm:"not null;index" json:"activityDate"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "sales_activities"
}

package domain

import "time"

// Comment is an append-only note on an enquiry. CommentNumber starts at 1
// and increases strictly within one enquiry.
type Comment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EnquiryID     uint      `gorm:"not null;uniqueIndex:idx_comment_enquiry_number,priority:1" json:"enquiryId"`
	UserID        *uint     `gorm:"index" json:"userId"`
	CommentText   string    `gorm:"size:1000;not null" json:"commentText"`
	CommentNumber int       `gorm:"not null;uniqueIndex:idx_comment_enquiry_number,priority:2" json:"commentNumber"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "enquiry_comments"
}

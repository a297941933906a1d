// file: models/announcement.go
package models

import "time"

// Announcement 对应 unihub_announcement 表，只增不改的公告流
type Announcement struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedBy uint32    `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (Announcement) TableName() string {
	return "unihub_announcement"
}

// file: models/registration.go
package models

import "time"

// RegistrationStatus 定义报名审批状态
type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

// Registration 对应 unihub_registration 表
// (user_id, event_id) 组合唯一：同一用户对同一活动最多一条报名
// 没有 cancelled 状态，取消报名就是删除记录（仅限 pending）
type Registration struct {
	ID        uint32             `gorm:"primarykey" json:"id"`
	UserID    uint32             `gorm:"uniqueIndex:unique_user_event;not null" json:"user_id"`
	EventID   uint32             `gorm:"uniqueIndex:unique_user_event;not null" json:"event_id"`
	TeamID    *uint32            `gorm:"index" json:"team_id,omitempty"`
	Status    RegistrationStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Registration) TableName() string {
	return "unihub_registration"
}

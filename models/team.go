// file: models/team.go
package models

import (
	"time"
)

// JoinCodeLength 入队邀请码长度（全局唯一，大写字母+数字）
const JoinCodeLength = 6

// Team 对应 unihub_team 表，每支队伍属于一个活动
type Team struct {
	ID             uint32    `gorm:"primarykey" json:"id"`
	EventID        uint32    `gorm:"not null;index" json:"event_id"`
	TeamName       string    `gorm:"size:100;not null" json:"team_name"`
	JoinCode       string    `gorm:"size:20;unique;not null" json:"join_code"`
	LeaderID       uint32    `gorm:"not null" json:"leader_id"`
	Leader         User      `gorm:"foreignKey:LeaderID" json:"leader"`
	LogoImage      string    `gorm:"size:512" json:"logo_image"`
	PaymentReceipt string    `gorm:"size:512" json:"payment_receipt"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Members []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members"`
}

func (Team) TableName() string {
	return "unihub_team"
}

// file: models/event.go
package models

import (
	"time"
)

// RegistrationType 定义活动的报名方式
type RegistrationType string

const (
	RegistrationIndividual RegistrationType = "individual"
	RegistrationTeam       RegistrationType = "team"
)

// Event 对应 unihub_event 表
// MaxTeamSize 为 nil 表示不限制队伍人数
type Event struct {
	ID               uint32           `gorm:"primarykey" json:"id,omitempty"`
	Title            string           `gorm:"size:100;not null" json:"title" binding:"required"`
	Description      string           `gorm:"type:text" json:"description"`
	StartTime        time.Time        `gorm:"not null" json:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Location         string           `gorm:"size:255" json:"location"`
	Capacity         uint             `gorm:"not null;default:0" json:"capacity"`
	CoverImage       string           `gorm:"size:512" json:"cover_image"`
	ClubName         string           `gorm:"size:100" json:"club_name"`
	CreatedBy        uint32           `gorm:"not null;index" json:"created_by"`
	RegistrationType RegistrationType `gorm:"size:16;not null;default:'individual'" json:"registration_type"`
	MinTeamSize      uint             `gorm:"default:1" json:"min_team_size"`
	MaxTeamSize      *uint            `json:"max_team_size,omitempty"`
	IsPaid           bool             `gorm:"not null;default:false" json:"is_paid"`
	FeeAmount        float64          `gorm:"type:decimal(10,2);default:0" json:"fee_amount"`
	PaymentHandle    string           `gorm:"size:100" json:"payment_handle"`
	PaymentQRImage   string           `gorm:"size:512" json:"payment_qr_image"`
	CreatedAt        time.Time        `json:"created_at,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at,omitempty"`

	// 删除活动时级联清理报名与队伍
	Registrations []Registration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Teams         []Team         `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Event) TableName() string {
	return "unihub_event"
}

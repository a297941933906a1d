// file: dto/event.go
package dto

import (
	"strings"
	"time"
)

// ========== 请求 DTO ==========

type CreateEventReq struct {
	Title            string    `json:"title" binding:"required"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Location         string    `json:"location"`
	Capacity         uint      `json:"capacity"`
	CoverImage       string    `json:"cover_image"`
	ClubName         string    `json:"club_name"`
	RegistrationType string    `json:"registration_type"` // individual / team
	MinTeamSize      uint      `json:"min_team_size"`
	MaxTeamSize      *uint     `json:"max_team_size"`
	IsPaid           bool      `json:"is_paid"`
	FeeAmount        float64   `json:"fee_amount"`
	PaymentHandle    string    `json:"payment_handle"`
	PaymentQRImage   string    `json:"payment_qr_image"`
}

// Normalize 清洗输入并补默认值
func (r *CreateEventReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.ClubName = strings.TrimSpace(r.ClubName)
	r.RegistrationType = strings.ToLower(strings.TrimSpace(r.RegistrationType))

	if r.RegistrationType == "" {
		r.RegistrationType = "individual"
	}
	if r.MinTeamSize == 0 {
		r.MinTeamSize = 1
	}
	// 免费活动不保留费用字段
	if !r.IsPaid {
		r.FeeAmount = 0
		r.PaymentHandle = ""
		r.PaymentQRImage = ""
	}
}

type UpdateEventReq struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartTime      *time.Time `json:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	Location       string     `json:"location"`
	Capacity       *uint      `json:"capacity"`
	CoverImage     string     `json:"cover_image"`
	ClubName       string     `json:"club_name"`
	IsPaid         *bool      `json:"is_paid"`
	FeeAmount      *float64   `json:"fee_amount"`
	PaymentHandle  string     `json:"payment_handle"`
	PaymentQRImage string     `json:"payment_qr_image"`
}

// ========== 响应 DTO ==========

type EventItemResp struct {
	ID               uint32  `json:"id"`
	Title            string  `json:"title"`
	StartTime        string  `json:"start_time"`
	Location         string  `json:"location"`
	ClubName         string  `json:"club_name"`
	CoverImage       string  `json:"cover_image"`
	Capacity         uint    `json:"capacity"`
	RegistrationType string  `json:"registration_type"`
	IsPaid           bool    `json:"is_paid"`
	FeeAmount        float64 `json:"fee_amount"`
}

type EventDetailResp struct {
	EventItemResp
	Description    string      `json:"description"`
	MinTeamSize    uint        `json:"min_team_size"`
	MaxTeamSize    *uint       `json:"max_team_size,omitempty"`
	PaymentHandle  string      `json:"payment_handle,omitempty"`
	PaymentQRImage string      `json:"payment_qr_image,omitempty"`
	CreatedBy      uint32      `json:"created_by"`
	Stats          interface{} `json:"stats,omitempty"`
}

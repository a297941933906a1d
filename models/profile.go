// file: models/profile.go
package models

import "time"

// Profile 与 User 一对一，注册时自动创建一条空记录
// OnboardingComplete 为 false 时，除资料完善接口外的所有接口都会被拦截
type Profile struct {
	ID                 uint32    `gorm:"primarykey" json:"id"`
	UserID             uint32    `gorm:"unique;not null" json:"user_id"`
	DisplayName        string    `gorm:"size:50" json:"display_name"`
	Department         string    `gorm:"size:100" json:"department"`
	Year               *int      `json:"year,omitempty"`
	StudentNumber      string    `gorm:"size:50" json:"student_number"`
	OnboardingComplete bool      `gorm:"not null;default:false" json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "unihub_profile"
}

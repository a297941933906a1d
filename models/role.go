// file: models/role.go
package models

import (
	"strings"
	"time"
)

// 自定义角色类型
type Role string

const (
	RoleAdmin     Role = "admin"
	RolePresident Role = "president"
	RoleStudent   Role = "student"
)

// StaffEmailDomain 教职工邮箱域，注册时命中该域的账号直接成为管理员
const StaffEmailDomain = "staff.university-hub.edu"

// RoleAssignment 与 User 一对一，每个用户同一时刻只有一个角色
// president 不会在注册时产生，只能由管理员通过提升接口授予
type RoleAssignment struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	UserID    uint32    `gorm:"unique;not null" json:"user_id"`
	Role      Role      `gorm:"size:16;not null;default:'student'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RoleAssignment) TableName() string {
	return "unihub_role_assignment"
}

// DeriveRole 根据注册邮箱推导初始角色：教职工域 -> admin，其余 -> student
func DeriveRole(email string) Role {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return RoleStudent
	}
	if strings.EqualFold(email[at+1:], StaffEmailDomain) {
		return RoleAdmin
	}
	return RoleStudent
}

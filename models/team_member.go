// file: models/team_member.go
package models

import "time"

// TeamMember 对应 unihub_team_members 表
// (team_id, user_id) 组合唯一，队长信息记录在 Team.LeaderID 上
type TeamMember struct {
	ID       uint32    `gorm:"primarykey" json:"id"`
	TeamID   uint32    `gorm:"uniqueIndex:unique_team_user;not null" json:"team_id"`
	UserID   uint32    `gorm:"uniqueIndex:unique_team_user;not null" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

func (TeamMember) TableName() string {
	return "unihub_team_members"
}

// file: services/policy_service.go
package services

import (
	"github.com/syedmaroofhussain3-blip/university-hub/models"
)

// Actor 表示一次请求的操作者，由 JWT 中间件解析得到
type Actor struct {
	ID   uint32
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// IsOfficer 判断操作者是否是某活动的"干部"：活动创建者或管理员
// 报名审批、报名名单查看、活动修改删除都以此为准
func IsOfficer(actor Actor, event models.Event) bool {
	return actor.IsAdmin() || event.CreatedBy == actor.ID
}

// --- 个人资料 ---

// CanReadProfile 本人和管理员可读；活动创建者可以查看报名了自己活动的用户资料
func CanReadProfile(actor Actor, ownerID uint32, registeredOnActorsEvent bool) bool {
	if actor.ID == ownerID || actor.IsAdmin() {
		return true
	}
	return registeredOnActorsEvent
}

// CanUpdateProfile 资料只有本人可写
func CanUpdateProfile(actor Actor, ownerID uint32) bool {
	return actor.ID == ownerID
}

// --- 角色 ---

// CanAssignRole 只有管理员可以提升/降级角色，且不能操作自己
// 可赋予的角色仅限 president / student，admin 不通过此接口产生
func CanAssignRole(actor Actor, targetUserID uint32, newRole models.Role) bool {
	if !actor.IsAdmin() {
		return false
	}
	if actor.ID == targetUserID {
		return false
	}
	return newRole == models.RolePresident || newRole == models.RoleStudent
}

// --- 活动 ---

// CanCreateEvent 由 president 或 admin 创建
func CanCreateEvent(actor Actor) bool {
	return actor.Role == models.RolePresident || actor.IsAdmin()
}

// CanManageEvent 修改/删除活动：创建者或管理员
func CanManageEvent(actor Actor, event models.Event) bool {
	return IsOfficer(actor, event)
}

// --- 报名 ---

// CanReadRegistration 报名者本人、活动创建者、管理员可读
func CanReadRegistration(actor Actor, reg models.Registration, event models.Event) bool {
	return actor.ID == reg.UserID || IsOfficer(actor, event)
}

// CanUpdateRegistration 审批（改状态）只允许活动创建者或管理员
func CanUpdateRegistration(actor Actor, event models.Event) bool {
	return IsOfficer(actor, event)
}

// CanCancelRegistration 取消报名 = 删除记录，仅限本人且状态仍为 pending
func CanCancelRegistration(actor Actor, reg models.Registration) bool {
	return actor.ID == reg.UserID && reg.Status == models.StatusPending
}

// --- 队伍 ---

// CanManageTeam 修改/解散队伍：队长、活动创建者或管理员
func CanManageTeam(actor Actor, team models.Team, event models.Event) bool {
	return actor.ID == team.LeaderID || IsOfficer(actor, event)
}

// CanRemoveTeamMember 移除队员：本人退出、队长移除、活动创建者或管理员移除
func CanRemoveTeamMember(actor Actor, memberUserID uint32, team models.Team, event models.Event) bool {
	return actor.ID == memberUserID || CanManageTeam(actor, team, event)
}

// --- 公告 ---

// CanPostAnnouncement 由 president 或 admin 发布
func CanPostAnnouncement(actor Actor) bool {
	return actor.Role == models.RolePresident || actor.IsAdmin()
}

// CanDeleteAnnouncement 删除公告：发布者或管理员
func CanDeleteAnnouncement(actor Actor, ann models.Announcement) bool {
	return actor.ID == ann.CreatedBy || actor.IsAdmin()
}

// --- 上传文件 ---

// CanDeleteUpload 文件公开可读，但删除仅限上传者本人的命名空间
func CanDeleteUpload(actor Actor, up models.Upload) bool {
	return actor.ID == up.OwnerID
}

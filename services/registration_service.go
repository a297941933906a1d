// file: services/registration_service.go
package services

import (
	"errors"
	"time"

	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 报名/组队相关的业务错误，controller 层据此映射到统一的错误码
var (
	ErrNotIndividualEvent = errors.New("event does not accept individual registration")
	ErrNotTeamEvent       = errors.New("event does not accept team registration")
	ErrEventFull          = errors.New("event capacity reached")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrTeamNotFound       = errors.New("invalid join code")
	ErrAlreadyMember      = errors.New("already a member of this team")
	ErrTeamFull           = errors.New("team is full")
	ErrNotPending         = errors.New("registration is no longer pending")
	ErrCodeExhausted      = errors.New("failed to generate a unique join code")
)

// InitialStatus 计算报名创建时的初始状态：
//   - 个人报名：直接 approved，无需干部审批（付费个人活动同样走此路径，与线上行为一致）
//   - 组队报名：付费活动 pending（等待干部核对收款凭证），免费活动 approved
func InitialStatus(ev models.Event, viaTeam bool) models.RegistrationStatus {
	if !viaTeam {
		return models.StatusApproved
	}
	if ev.IsPaid {
		return models.StatusPending
	}
	return models.StatusApproved
}

// lockForUpdate 在 MySQL 上对查询行加排他锁，把容量校验和插入放进同一个临界区
// SQLite 写入整体串行且不支持 FOR UPDATE，跳过即可
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// eventHasRoom 在事务内核对活动容量，Capacity 为 0 表示不限人数
// 调用前必须已对活动行加锁，否则两个并发报名可能一起挤过容量线
func eventHasRoom(tx *gorm.DB, ev models.Event) (bool, error) {
	if ev.Capacity == 0 {
		return true, nil
	}
	var count int64
	if err := tx.Model(&models.Registration{}).Where("event_id = ?", ev.ID).Count(&count).Error; err != nil {
		return false, err
	}
	return count < int64(ev.Capacity), nil
}

// RegisterIndividual 个人报名：锁活动行 -> 容量校验 -> 插入报名
// (user_id, event_id) 唯一索引兜底重复报名
func RegisterIndividual(db *gorm.DB, userID uint32, eventID uint32) (models.Registration, error) {
	var reg models.Registration
	err := db.Transaction(func(tx *gorm.DB) error {
		var ev models.Event
		if err := lockForUpdate(tx).First(&ev, eventID).Error; err != nil {
			return err
		}
		if ev.RegistrationType != models.RegistrationIndividual {
			return ErrNotIndividualEvent
		}
		hasRoom, err := eventHasRoom(tx, ev)
		if err != nil {
			return err
		}
		if !hasRoom {
			return ErrEventFull
		}

		reg = models.Registration{
			UserID:  userID,
			EventID: ev.ID,
			Status:  InitialStatus(ev, false),
		}
		if err := tx.Create(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err == nil {
		InvalidateEventStats(eventID)
	}
	return reg, err
}

// uniqueJoinCode 生成未被占用的入队邀请码
// 码空间远大于预期队伍数，循环基本一次命中；join_code 唯一索引是最终兜底
func uniqueJoinCode(tx *gorm.DB) (string, error) {
	for i := 0; i < 16; i++ {
		code := utils.GenerateJoinCode(models.JoinCodeLength)
		var count int64
		if err := tx.Model(&models.Team{}).Where("join_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// CreateTeam 创建队伍并让创建者成为队长
// 队伍行、队长成员记录、队长报名记录在同一个事务里落库，失败不会留下半成品
func CreateTeam(db *gorm.DB, userID uint32, eventID uint32, teamName string, logoImage string) (models.Team, models.Registration, error) {
	var team models.Team
	var reg models.Registration
	err := db.Transaction(func(tx *gorm.DB) error {
		var ev models.Event
		if err := lockForUpdate(tx).First(&ev, eventID).Error; err != nil {
			return err
		}
		if ev.RegistrationType != models.RegistrationTeam {
			return ErrNotTeamEvent
		}
		hasRoom, err := eventHasRoom(tx, ev)
		if err != nil {
			return err
		}
		if !hasRoom {
			return ErrEventFull
		}

		code, err := uniqueJoinCode(tx)
		if err != nil {
			return err
		}

		team = models.Team{
			EventID:   ev.ID,
			TeamName:  teamName,
			JoinCode:  code,
			LeaderID:  userID,
			LogoImage: logoImage,
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		leaderMember := models.TeamMember{
			TeamID:   team.ID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(&leaderMember).Error; err != nil {
			return err
		}

		reg = models.Registration{
			UserID:  userID,
			EventID: ev.ID,
			TeamID:  &team.ID,
			Status:  InitialStatus(ev, true),
		}
		if err := tx.Create(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err == nil {
		InvalidateEventStats(eventID)
	}
	return team, reg, err
}

// JoinTeam 凭邀请码入队，校验顺序：
// (a) 邀请码在该活动下存在 (b) 尚未是该队成员 (c) 队伍未满 (d) 活动容量未满
// 成员记录和报名记录同事务写入，任一步失败整体回滚
func JoinTeam(db *gorm.DB, userID uint32, eventID uint32, joinCode string) (models.Team, models.Registration, error) {
	var team models.Team
	var reg models.Registration
	err := db.Transaction(func(tx *gorm.DB) error {
		var ev models.Event
		if err := lockForUpdate(tx).First(&ev, eventID).Error; err != nil {
			return err
		}
		if ev.RegistrationType != models.RegistrationTeam {
			return ErrNotTeamEvent
		}

		if err := tx.Where("event_id = ? AND join_code = ?", eventID, joinCode).First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		var memberCount int64
		if err := tx.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount).Error; err != nil {
			return err
		}
		var existing int64
		if err := tx.Model(&models.TeamMember{}).Where("team_id = ? AND user_id = ?", team.ID, userID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}
		if ev.MaxTeamSize != nil && memberCount >= int64(*ev.MaxTeamSize) {
			return ErrTeamFull
		}

		hasRoom, err := eventHasRoom(tx, ev)
		if err != nil {
			return err
		}
		if !hasRoom {
			return ErrEventFull
		}

		member := models.TeamMember{
			TeamID:   team.ID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return err
		}

		reg = models.Registration{
			UserID:  userID,
			EventID: ev.ID,
			TeamID:  &team.ID,
			Status:  InitialStatus(ev, true),
		}
		if err := tx.Create(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err == nil {
		InvalidateEventStats(eventID)
	}
	return team, reg, err
}

// SetRegistrationStatus 干部审批：设置单条报名的状态
// 权限校验在 controller 层通过 CanUpdateRegistration 完成
func SetRegistrationStatus(db *gorm.DB, regID uint32, status models.RegistrationStatus) (models.Registration, error) {
	var reg models.Registration
	if err := db.First(&reg, regID).Error; err != nil {
		return reg, err
	}
	if err := db.Model(&reg).Update("status", status).Error; err != nil {
		return reg, err
	}
	InvalidateEventStats(reg.EventID)
	return reg, nil
}

// SetTeamApproval 批量审批：一次 UPDATE 把该队所有现有成员的报名置为同一状态
// 干部看到的"队伍状态"读的是队长那条报名，批准/驳回队伍即整体改写
func SetTeamApproval(db *gorm.DB, teamID uint32, status models.RegistrationStatus) (int64, error) {
	var team models.Team
	if err := db.First(&team, teamID).Error; err != nil {
		return 0, err
	}
	result := db.Model(&models.Registration{}).Where("team_id = ?", teamID).Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}
	InvalidateEventStats(team.EventID)
	return result.RowsAffected, nil
}

// CancelRegistration 本人取消报名（删除记录），仅限 pending 状态
func CancelRegistration(db *gorm.DB, reg models.Registration) error {
	if reg.Status != models.StatusPending {
		return ErrNotPending
	}
	if err := db.Delete(&reg).Error; err != nil {
		return err
	}
	InvalidateEventStats(reg.EventID)
	return nil
}

// RemoveTeamMember 移除队员：成员记录和其报名记录同事务删除
// 退队（本人）、踢人（队长/干部）共用此函数，权限在 controller 层校验
func RemoveTeamMember(db *gorm.DB, team models.Team, memberUserID uint32) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("team_id = ? AND user_id = ?", team.ID, memberUserID).Delete(&models.TeamMember{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("event_id = ? AND user_id = ?", team.EventID, memberUserID).Delete(&models.Registration{}).Error
	})
	if err == nil {
		InvalidateEventStats(team.EventID)
	}
	return err
}

// DisbandTeam 解散队伍：队伍、全部成员记录、全部关联报名一并删除
func DisbandTeam(db *gorm.DB, team models.Team) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err == nil {
		InvalidateEventStats(team.EventID)
	}
	return err
}

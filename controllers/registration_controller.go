// file: controllers/registration_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/syedmaroofhussain3-blip/university-hub/database"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/services"
	"github.com/syedmaroofhussain3-blip/university-hub/utils"
	"gorm.io/gorm"
)

// registrationErrorCode 把业务错误映射到统一错误码
func registrationErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotIndividualEvent):
		return 3101, "该活动为组队报名，请创建或加入队伍"
	case errors.Is(err, services.ErrNotTeamEvent):
		return 3102, "该活动为个人报名"
	case errors.Is(err, services.ErrEventFull):
		return 3103, "活动名额已满"
	case errors.Is(err, services.ErrAlreadyRegistered):
		return 3104, "已报名该活动"
	case errors.Is(err, services.ErrTeamNotFound):
		return 3105, "Invalid join code"
	case errors.Is(err, services.ErrAlreadyMember):
		return 3106, "已是该队伍成员"
	case errors.Is(err, services.ErrTeamFull):
		return 3107, "队伍人数已满"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 4004, "活动不存在"
	}
	return 5000, "数据库错误"
}

// RegisterForEvent 个人报名（免费/付费均直接通过，组队活动走队伍接口）
func RegisterForEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的活动ID")
		return
	}
	actor := currentActor(c)

	reg, err := services.RegisterIndividual(database.DB, actor.ID, uint32(eventID))
	if err != nil {
		code, msg := registrationErrorCode(err)
		utils.Error(c, code, msg)
		return
	}

	utils.Success(c, "Registered successfully", gin.H{
		"registration_id": reg.ID,
		"event_id":        reg.EventID,
		"status":          reg.Status,
	})
}

// CancelRegistration 本人取消报名，仅限 pending
func CancelRegistration(c *gin.Context) {
	regID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的报名ID")
		return
	}
	actor := currentActor(c)

	var reg models.Registration
	if err := database.DB.First(&reg, regID).Error; err != nil {
		utils.Error(c, 4004, "报名记录不存在")
		return
	}

	if !services.CanCancelRegistration(actor, reg) {
		if reg.UserID == actor.ID {
			utils.Error(c, 3108, "已审批的报名无法取消")
			return
		}
		utils.Error(c, 4003, "权限不足")
		return
	}

	if err := services.CancelRegistration(database.DB, reg); err != nil {
		utils.Error(c, 5000, "取消报名失败")
		return
	}

	utils.Success(c, "Registration cancelled", nil)
}

func ListMyRegistrations(c *gin.Context) {
	actor := currentActor(c)

	var regs []models.Registration
	database.DB.Where("user_id = ?", actor.ID).Order("created_at desc").Find(&regs)

	type RegInfo struct {
		ID         uint32                    `json:"id"`
		EventID    uint32                    `json:"event_id"`
		EventTitle string                    `json:"event_title"`
		TeamID     *uint32                   `json:"team_id,omitempty"`
		Status     models.RegistrationStatus `json:"status"`
		CreatedAt  string                    `json:"created_at"`
	}
	var result []RegInfo
	for _, reg := range regs {
		var ev models.Event
		database.DB.Select("title").First(&ev, reg.EventID)
		result = append(result, RegInfo{
			ID:         reg.ID,
			EventID:    reg.EventID,
			EventTitle: ev.Title,
			TeamID:     reg.TeamID,
			Status:     reg.Status,
			CreatedAt:  reg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", result)
}

// --- 干部接口 ---

// ListEventRegistrations 活动创建者/管理员查看报名名单（含报名者资料）
func ListEventRegistrations(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的活动ID")
		return
	}
	actor := currentActor(c)

	var ev models.Event
	if err := database.DB.First(&ev, eventID).Error; err != nil {
		utils.Error(c, 4004, "活动不存在")
		return
	}
	if !services.CanUpdateRegistration(actor, ev) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	status := c.Query("status")
	db := database.DB.Preload("User").Preload("User.Profile").Where("event_id = ?", ev.ID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var regs []models.Registration
	db.Order("created_at asc").Find(&regs)

	var result []gin.H
	for _, reg := range regs {
		entry := gin.H{
			"id":         reg.ID,
			"user_id":    reg.UserID,
			"team_id":    reg.TeamID,
			"status":     reg.Status,
			"created_at": reg.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if reg.User != nil {
			entry["email"] = reg.User.Email
			if reg.User.Profile != nil {
				entry["display_name"] = reg.User.Profile.DisplayName
				entry["department"] = reg.User.Profile.Department
				entry["student_number"] = reg.User.Profile.StudentNumber
			}
		}
		result = append(result, entry)
	}

	utils.Success(c, "success", gin.H{
		"event_id":      ev.ID,
		"registrations": result,
	})
}

// UpdateRegistrationStatus 单条审批：活动创建者或管理员置 approved/rejected
func UpdateRegistrationStatus(c *gin.Context) {
	regID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的报名ID")
		return
	}
	actor := currentActor(c)

	var req struct {
		Status models.RegistrationStatus `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "无效的状态")
		return
	}

	var reg models.Registration
	if err := database.DB.First(&reg, regID).Error; err != nil {
		utils.Error(c, 4004, "报名记录不存在")
		return
	}
	var ev models.Event
	if err := database.DB.First(&ev, reg.EventID).Error; err != nil {
		utils.Error(c, 4004, "活动不存在")
		return
	}
	if !services.CanUpdateRegistration(actor, ev) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	updated, err := services.SetRegistrationStatus(database.DB, reg.ID, req.Status)
	if err != nil {
		utils.Error(c, 5000, "更新报名状态失败")
		return
	}

	utils.Success(c, "Registration status updated", gin.H{
		"registration_id": updated.ID,
		"status":          updated.Status,
	})
}

// UpdateTeamApproval 队伍审批：一次操作改写全队成员的报名状态
func UpdateTeamApproval(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}
	actor := currentActor(c)

	var req struct {
		Status models.RegistrationStatus `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "无效的状态")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}
	var ev models.Event
	if err := database.DB.First(&ev, team.EventID).Error; err != nil {
		utils.Error(c, 4004, "活动不存在")
		return
	}
	if !services.CanUpdateRegistration(actor, ev) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	affected, err := services.SetTeamApproval(database.DB, team.ID, req.Status)
	if err != nil {
		utils.Error(c, 5000, "更新队伍审批状态失败")
		return
	}

	utils.Success(c, "Team approval updated", gin.H{
		"team_id":  team.ID,
		"status":   req.Status,
		"affected": affected,
	})
}

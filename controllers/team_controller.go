// file: controllers/team_controller.go
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

// CreateTeam 为组队活动创建队伍，创建者成为队长并自动完成报名
func CreateTeam(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的活动ID")
		return
	}
	actor := currentActor(c)

	var req struct {
		TeamName  string `json:"team_name" binding:"required"`
		LogoImage string `json:"logo_image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	team, reg, err := services.CreateTeam(database.DB, actor.ID, uint32(eventID), req.TeamName, req.LogoImage)
	if err != nil {
		code, msg := registrationErrorCode(err)
		utils.Error(c, code, msg)
		return
	}

	utils.Success(c, "Team created successfully", gin.H{
		"id":        team.ID,
		"event_id":  team.EventID,
		"team_name": team.TeamName,
		"leader_id": team.LeaderID,
		"join_code": team.JoinCode,
		"status":    reg.Status,
	})
}

// JoinTeam 凭邀请码入队，入队成功即产生本人的报名记录
func JoinTeam(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的活动ID")
		return
	}
	actor := currentActor(c)

	var req struct {
		JoinCode string `json:"join_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	team, reg, err := services.JoinTeam(database.DB, actor.ID, uint32(eventID), req.JoinCode)
	if err != nil {
		code, msg := registrationErrorCode(err)
		utils.Error(c, code, msg)
		return
	}

	utils.Success(c, "Joined team successfully", gin.H{
		"team_id":   team.ID,
		"team_name": team.TeamName,
		"status":    reg.Status,
	})
}

func GetTeamDetail(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}

	var team models.Team
	if err := database.DB.Preload("Members").Preload("Members.User").Preload("Members.User.Profile").First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	// 队伍整体审批状态以队长那条报名为准
	var leaderReg models.Registration
	var leaderStatus models.RegistrationStatus
	if err := database.DB.Where("event_id = ? AND user_id = ?", team.EventID, team.LeaderID).First(&leaderReg).Error; err == nil {
		leaderStatus = leaderReg.Status
	}

	var members []gin.H
	for _, m := range team.Members {
		entry := gin.H{
			"user_id":   m.UserID,
			"joined_at": m.JoinedAt.Format("2006-01-02 15:04:05"),
			"is_leader": m.UserID == team.LeaderID,
		}
		if m.User.Profile != nil {
			entry["display_name"] = m.User.Profile.DisplayName
		}
		members = append(members, entry)
	}

	utils.Success(c, "success", gin.H{
		"id":              team.ID,
		"event_id":        team.EventID,
		"team_name":       team.TeamName,
		"leader_id":       team.LeaderID,
		"logo_image":      team.LogoImage,
		"payment_receipt": team.PaymentReceipt,
		"status":          leaderStatus,
		"members":         members,
	})
}

// LeaveTeam 本人退队，队长不能退（先转让或解散）
func LeaveTeam(c *gin.Context) {
	actor := currentActor(c)
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}
	if team.LeaderID == actor.ID {
		utils.Error(c, 3006, "Leader cannot leave team, please disband the team instead")
		return
	}

	if err := services.RemoveTeamMember(database.DB, team, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 3005, "User not in this team")
			return
		}
		utils.Error(c, 5000, "退出队伍失败")
		return
	}

	utils.Success(c, "Left team successfully", nil)
}

// KickMember 队长/活动创建者/管理员移除队员
func KickMember(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))
	memberUserID, _ := strconv.Atoi(c.Param("user_id"))
	actor := currentActor(c)

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

	if uint32(memberUserID) == team.LeaderID {
		utils.Error(c, 3008, "Cannot remove the leader")
		return
	}
	if !services.CanRemoveTeamMember(actor, uint32(memberUserID), team, ev) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	if err := services.RemoveTeamMember(database.DB, team, uint32(memberUserID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 3007, "Member not found in this team")
			return
		}
		utils.Error(c, 5000, "移除队员失败")
		return
	}

	utils.Success(c, "Member removed successfully", nil)
}

// DisbandTeam 解散队伍：队长、活动创建者或管理员
func DisbandTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}
	actor := currentActor(c)

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
	if !services.CanManageTeam(actor, team, ev) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	if err := services.DisbandTeam(database.DB, team); err != nil {
		utils.Error(c, 5000, "解散队伍失败")
		return
	}

	utils.Success(c, "Team disbanded successfully", nil)
}

// UpdateTeam 修改队名/队标
func UpdateTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}
	actor := currentActor(c)

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
	if !services.CanManageTeam(actor, team, ev) {
		utils.Error(c, 4003, "权限不足，只有队长可以修改队伍信息")
		return
	}

	var req struct {
		TeamName  string `json:"team_name"`
		LogoImage string `json:"logo_image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	updates := map[string]interface{}{}
	if req.TeamName != "" {
		updates["team_name"] = req.TeamName
	}
	if req.LogoImage != "" {
		updates["logo_image"] = req.LogoImage
	}
	if err := database.DB.Model(&team).Updates(updates).Error; err != nil {
		utils.Error(c, 5000, "更新队伍信息失败")
		return
	}

	utils.Success(c, "Team updated successfully", nil)
}

// AttachReceipt 队长上传收款凭证后挂到队伍上，等待干部审批
func AttachReceipt(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}
	actor := currentActor(c)

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}
	if team.LeaderID != actor.ID {
		utils.Error(c, 4003, "权限不足，只有队长可以上传凭证")
		return
	}

	var req struct {
		PaymentReceipt string `json:"payment_receipt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	if err := database.DB.Model(&team).Update("payment_receipt", req.PaymentReceipt).Error; err != nil {
		utils.Error(c, 5000, "保存凭证失败")
		return
	}

	utils.Success(c, "Receipt attached successfully", nil)
}

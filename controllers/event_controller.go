// file: controllers/event_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/syedmaroofhussain3-blip/university-hub/database"
	"github.com/syedmaroofhussain3-blip/university-hub/dto"
	"github.com/syedmaroofhussain3-blip/university-hub/mappers"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/services"
	"github.com/syedmaroofhussain3-blip/university-hub/utils"
	"gorm.io/gorm"
)

func ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")

	var events []models.Event
	var total int64

	db := database.DB.Model(&models.Event{})
	if search != "" {
		db = db.Where("title LIKE ? OR club_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	db.Count(&total)
	db.Order("start_time asc").Offset((page - 1) * limit).Limit(limit).Find(&events)

	items := make([]dto.EventItemResp, 0, len(events))
	for _, ev := range events {
		items = append(items, mappers.MapModelToItemResp(ev))
	}

	utils.Success(c, "success", gin.H{
		"total":  total,
		"events": items,
	})
}

func GetEventDetail(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的活动ID")
		return
	}

	var ev models.Event
	if err := database.DB.First(&ev, eventID).Error; err != nil {
		utils.Error(c, 4004, "活动不存在")
		return
	}

	stats, err := services.GetEventStats(database.DB, ev.ID)
	if err != nil {
		utils.Error(c, 5000, "查询报名统计失败")
		return
	}

	utils.Success(c, "success", mappers.MapModelToDetailResp(ev, &stats))
}

func GetEventStats(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的活动ID")
		return
	}

	stats, err := services.GetEventStats(database.DB, uint32(eventID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 4004, "活动不存在")
			return
		}
		utils.Error(c, 5000, "查询报名统计失败")
		return
	}

	utils.Success(c, "success", stats)
}

// --- 干部接口（president/admin 由路由中间件把关，行级权限走 policy） ---

func CreateEvent(c *gin.Context) {
	actor := currentActor(c)
	if !services.CanCreateEvent(actor) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	var req dto.CreateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	if req.RegistrationType != string(models.RegistrationIndividual) && req.RegistrationType != string(models.RegistrationTeam) {
		utils.Error(c, 1001, "无效的报名方式")
		return
	}
	if req.MaxTeamSize != nil && *req.MaxTeamSize < req.MinTeamSize {
		utils.Error(c, 1001, "队伍人数上限不能小于下限")
		return
	}

	newEvent := mappers.MapCreateReqToModel(req, actor.ID)
	if err := database.DB.Create(&newEvent).Error; err != nil {
		utils.Error(c, 5000, "创建活动失败: "+err.Error())
		return
	}

	utils.Success(c, "Event created successfully", gin.H{
		"id":    newEvent.ID,
		"title": newEvent.Title,
	})
}

func UpdateEvent(c *gin.Context) {
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
	if !services.CanManageEvent(actor, ev) {
		utils.Error(c, 4003, "权限不足，只有创建者或管理员可以修改活动")
		return
	}

	var req dto.UpdateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.CoverImage != "" {
		updates["cover_image"] = req.CoverImage
	}
	if req.ClubName != "" {
		updates["club_name"] = req.ClubName
	}
	if req.IsPaid != nil {
		updates["is_paid"] = *req.IsPaid
	}
	if req.FeeAmount != nil {
		updates["fee_amount"] = *req.FeeAmount
	}
	if req.PaymentHandle != "" {
		updates["payment_handle"] = req.PaymentHandle
	}
	if req.PaymentQRImage != "" {
		updates["payment_qr_image"] = req.PaymentQRImage
	}

	if err := database.DB.Model(&ev).Updates(updates).Error; err != nil {
		utils.Error(c, 5000, "更新活动失败")
		return
	}

	utils.Success(c, "Event updated successfully", nil)
}

// DeleteEvent 删除活动，级联清理全部报名与队伍
func DeleteEvent(c *gin.Context) {
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
	if !services.CanManageEvent(actor, ev) {
		utils.Error(c, 4003, "权限不足，只有创建者或管理员可以删除活动")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		var teamIDs []uint32
		tx.Model(&models.Team{}).Where("event_id = ?", ev.ID).Pluck("id", &teamIDs)
		if len(teamIDs) > 0 {
			if err := tx.Where("team_id IN ?", teamIDs).Delete(&models.TeamMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id = ?", ev.ID).Delete(&models.Team{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&ev).Error
	})
	if err != nil {
		utils.Error(c, 5000, "删除活动失败")
		return
	}
	services.InvalidateEventStats(ev.ID)

	utils.Success(c, "Event deleted successfully", nil)
}

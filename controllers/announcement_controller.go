// file: controllers/announcement_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/syedmaroofhussain3-blip/university-hub/database"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/services"
	"github.com/syedmaroofhussain3-blip/university-hub/utils"
)

func ListAnnouncements(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var announcements []models.Announcement
	database.DB.Order("created_at desc").Limit(limit).Find(&announcements)

	utils.Success(c, "success", announcements)
}

// CreateAnnouncement 由 president 或 admin 发布
func CreateAnnouncement(c *gin.Context) {
	actor := currentActor(c)
	if !services.CanPostAnnouncement(actor) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	ann := models.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: actor.ID,
	}
	if err := database.DB.Create(&ann).Error; err != nil {
		utils.Error(c, 5000, "发布公告失败")
		return
	}

	utils.Success(c, "Announcement created successfully", gin.H{"id": ann.ID})
}

// DeleteAnnouncement 发布者或管理员删除
func DeleteAnnouncement(c *gin.Context) {
	annID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的公告ID")
		return
	}
	actor := currentActor(c)

	var ann models.Announcement
	if err := database.DB.First(&ann, annID).Error; err != nil {
		utils.Error(c, 4004, "公告不存在")
		return
	}
	if !services.CanDeleteAnnouncement(actor, ann) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	if err := database.DB.Delete(&ann).Error; err != nil {
		utils.Error(c, 5000, "删除公告失败")
		return
	}

	utils.Success(c, "Announcement deleted successfully", nil)
}

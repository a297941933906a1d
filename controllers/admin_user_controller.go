// file: controllers/admin_user_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/syedmaroofhussain3-blip/university-hub/database"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/services"
	"github.com/syedmaroofhussain3-blip/university-hub/utils"
)

// --- 仅管理员可访问的接口 ---

func AdminGetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	query := c.Query("query")

	var users []models.User
	var total int64
	db := database.DB.Model(&models.User{}).Preload("Profile").Preload("Role")
	if query != "" {
		db = db.Where("email LIKE ?", "%"+query+"%")
	}
	db.Count(&total)
	db.Offset((page - 1) * pageSize).Limit(pageSize).Order("id desc").Find(&users)

	var resultUsers []gin.H
	for _, user := range users {
		var displayName, department string
		if user.Profile != nil {
			displayName = user.Profile.DisplayName
			department = user.Profile.Department
		}
		var role models.Role
		if user.Role != nil {
			role = user.Role.Role
		}
		resultUsers = append(resultUsers, gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": displayName,
			"department":   department,
			"role":         role,
		})
	}
	utils.Success(c, "success", gin.H{
		"total": total,
		"users": resultUsers,
	})
}

// AdminUpdateUserRole 提升/降级角色，只允许在 president / student 之间切换
// admin 不能通过此接口产生或撤销，也不能修改自己
func AdminUpdateUserRole(c *gin.Context) {
	targetUserID, _ := strconv.Atoi(c.Param("id"))
	actor := currentActor(c)

	var req struct {
		Role models.Role `json:"role" binding:"required,oneof=president student"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "无效的角色")
		return
	}

	if !services.CanAssignRole(actor, uint32(targetUserID), req.Role) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	var assignment models.RoleAssignment
	if err := database.DB.Where("user_id = ?", targetUserID).First(&assignment).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}
	if assignment.Role == models.RoleAdmin {
		utils.Error(c, 2010, "Admin role cannot be modified")
		return
	}

	if err := database.DB.Model(&assignment).Update("role", req.Role).Error; err != nil {
		utils.Error(c, 5000, "更新角色失败")
		return
	}

	utils.Success(c, "Role updated successfully", gin.H{
		"user_id": assignment.UserID,
		"role":    req.Role,
	})
}

func AdminDeleteUser(c *gin.Context) {
	targetUserID, _ := strconv.Atoi(c.Param("id"))

	var assignment models.RoleAssignment
	if err := database.DB.Where("user_id = ?", targetUserID).First(&assignment).Error; err == nil {
		if assignment.Role == models.RoleAdmin {
			utils.Error(c, 2011, "Admin cannot be deleted")
			return
		}
	}

	var user models.User
	if err := database.DB.First(&user, targetUserID).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}
	// 级联清理资料和角色记录
	database.DB.Select("Profile", "Role").Delete(&user)
	utils.Success(c, "User deleted successfully", nil)
}

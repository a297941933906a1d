// file: controllers/user_controller.go
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
	"gorm.io/gorm/clause"
)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.Error(c, 2001, "邮箱已被注册")
		return
	}

	// 角色由邮箱域推导：教职工域 -> admin，其余 -> student
	// president 不在注册时产生，只能由管理员提升
	role := models.DeriveRole(req.Email)

	newUser := models.User{
		Email:    req.Email,
		Password: req.Password,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		// 空资料和角色记录随注册自动落库
		// DoNothing：注册重试时这两条可能已存在，重复插入直接吞掉，其它错误照常失败
		profile := models.Profile{UserID: newUser.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
			return err
		}
		assignment := models.RoleAssignment{UserID: newUser.ID, Role: role}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"id":    newUser.ID,
		"email": newUser.Email,
		"role":  role,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}

	var assignment models.RoleAssignment
	if err := database.DB.Where("user_id = ?", user.ID).First(&assignment).Error; err != nil {
		utils.Error(c, 5000, "角色信息缺失")
		return
	}

	var profile models.Profile
	database.DB.Where("user_id = ?", user.ID).First(&profile)

	token, err := utils.GenerateToken(user, assignment.Role)
	if err != nil {
		utils.Error(c, 5002, "Token 生成失败")
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":                  user.ID,
			"email":               user.Email,
			"role":                assignment.Role,
			"onboarding_complete": profile.OnboardingComplete,
		},
	})
}

// --- 需要登录的接口（不经过资料门禁，否则新用户无法完善资料） ---

func GetMe(c *gin.Context) {
	actor := currentActor(c)

	var user models.User
	if err := database.DB.Preload("Profile").Preload("Role").First(&user, actor.ID).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	utils.Success(c, "success", user)
}

// UpdateMyProfile 完善/修改入学资料
// 四项必填齐全后 onboarding_complete 置为 true，此后不可回退
func UpdateMyProfile(c *gin.Context) {
	actor := currentActor(c)

	var req struct {
		DisplayName   string `json:"display_name" binding:"required"`
		Department    string `json:"department" binding:"required"`
		Year          *int   `json:"year" binding:"required"`
		StudentNumber string `json:"student_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", actor.ID).First(&profile).Error; err != nil {
		utils.Error(c, 4004, "个人资料不存在")
		return
	}

	updates := map[string]interface{}{
		"display_name":        req.DisplayName,
		"department":          req.Department,
		"year":                req.Year,
		"student_number":      req.StudentNumber,
		"onboarding_complete": true,
	}
	if err := database.DB.Model(&profile).Updates(updates).Error; err != nil {
		utils.Error(c, 5000, "更新资料失败")
		return
	}

	utils.Success(c, "Profile updated successfully", gin.H{
		"onboarding_complete": true,
	})
}

// GetUserProfile 查看他人资料：本人、管理员，或对方报名了自己创建的活动
func GetUserProfile(c *gin.Context) {
	targetUserID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的用户ID")
		return
	}
	actor := currentActor(c)

	// 活动创建者可以看到报名者资料：查一下对方是否报名过自己创建的活动
	var regCount int64
	database.DB.Model(&models.Registration{}).
		Joins("JOIN unihub_event e ON e.id = unihub_registration.event_id").
		Where("unihub_registration.user_id = ? AND e.created_by = ?", targetUserID, actor.ID).
		Count(&regCount)

	if !services.CanReadProfile(actor, uint32(targetUserID), regCount > 0) {
		utils.Error(c, 4003, "权限不足")
		return
	}

	var user models.User
	if err := database.DB.Preload("Profile").First(&user, targetUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 4004, "用户不存在")
			return
		}
		utils.Error(c, 5000, "数据库错误")
		return
	}

	utils.Success(c, "success", gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"profile": user.Profile,
	})
}

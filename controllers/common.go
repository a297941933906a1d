// file: controllers/common.go
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/services"
)

// currentActor 从 JWT 中间件写入的上下文里取出操作者
func currentActor(c *gin.Context) services.Actor {
	userIDAny, _ := c.Get("user_id")
	roleAny, _ := c.Get("user_role")
	return services.Actor{
		ID:   userIDAny.(uint32),
		Role: roleAny.(models.Role),
	}
}

// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/syedmaroofhussain3-blip/university-hub/controllers"
	"github.com/syedmaroofhussain3-blip/university-hub/middlewares"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 注册/登录，无需 Token ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
		}

		// --- 资料接口：只要求登录，不经过资料门禁（否则新用户进不来） ---
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(middlewares.JWTAuthMiddleware())
		{
			usersAuth.GET("/me", controllers.GetMe)
			usersAuth.PUT("/me/profile", controllers.UpdateMyProfile)
			usersAuth.GET("/:id/profile", controllers.GetUserProfile)
		}

		// --- 下载网关公开，任何人可读 ---
		apiV1.GET("/uploads/:object_key/download", controllers.DownloadFile)

		// --- 其余接口：登录 + 完成入学资料 ---
		gated := apiV1.Group("")
		gated.Use(middlewares.JWTAuthMiddleware(), middlewares.ProfileGateMiddleware())
		{
			eventRoutes := gated.Group("/events")
			{
				eventRoutes.GET("", controllers.ListEvents)
				eventRoutes.GET("/:id", controllers.GetEventDetail)
				eventRoutes.GET("/:id/stats", controllers.GetEventStats)
				eventRoutes.POST("", middlewares.RoleAuthMiddleware(models.RolePresident), controllers.CreateEvent)
				eventRoutes.PUT("/:id", middlewares.RoleAuthMiddleware(models.RolePresident), controllers.UpdateEvent)
				eventRoutes.DELETE("/:id", middlewares.RoleAuthMiddleware(models.RolePresident), controllers.DeleteEvent)

				// 报名与组队挂在活动下
				eventRoutes.POST("/:id/register", controllers.RegisterForEvent)
				eventRoutes.GET("/:id/registrations", controllers.ListEventRegistrations)
				eventRoutes.POST("/:id/teams", controllers.CreateTeam)
				eventRoutes.POST("/:id/teams/join", controllers.JoinTeam)
			}

			registrationRoutes := gated.Group("/registrations")
			{
				registrationRoutes.GET("/mine", controllers.ListMyRegistrations)
				registrationRoutes.DELETE("/:id", controllers.CancelRegistration)
				registrationRoutes.PUT("/:id/status", controllers.UpdateRegistrationStatus)
			}

			teamRoutes := gated.Group("/teams")
			{
				teamRoutes.GET("/:id", controllers.GetTeamDetail)
				teamRoutes.PUT("/:id", controllers.UpdateTeam)
				teamRoutes.PUT("/:id/receipt", controllers.AttachReceipt)
				teamRoutes.PUT("/:id/approval", controllers.UpdateTeamApproval)
				teamRoutes.POST("/:id/leave", controllers.LeaveTeam)
				teamRoutes.DELETE("/:id", controllers.DisbandTeam)
				teamRoutes.DELETE("/:id/members/:user_id", controllers.KickMember)
			}

			announcementRoutes := gated.Group("/announcements")
			{
				announcementRoutes.GET("", controllers.ListAnnouncements)
				announcementRoutes.POST("", middlewares.RoleAuthMiddleware(models.RolePresident), controllers.CreateAnnouncement)
				announcementRoutes.DELETE("/:id", controllers.DeleteAnnouncement)
			}

			uploadRoutes := gated.Group("/uploads")
			{
				uploadRoutes.POST("", controllers.UploadFile)
				uploadRoutes.DELETE("/:id", controllers.DeleteFile)
			}
		}

		// --- 仅管理员 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/users", controllers.AdminGetUsers)
			adminRoutes.PUT("/users/:id/role", controllers.AdminUpdateUserRole)
			adminRoutes.DELETE("/users/:id", controllers.AdminDeleteUser)
		}
	}

	return r
}

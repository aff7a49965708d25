package routers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"messaging-backend/internal/handlers"
	"messaging-backend/internal/middlewares"
	"messaging-backend/internal/services"
	logger "messaging-backend/middleware/log"
)

// SetupRoutes 设置所有路由
func SetupRoutes(r *gin.Engine, log *logger.Logger,
	sessions *services.SessionService,
	authHandler *handlers.AuthHandler,
	channelHandler *handlers.ChannelHandler,
	adminHandler *handlers.AdminHandler,
) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.RequestLogger(log))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Status": "OK",
		})
	})

	authd := middlewares.AuthMiddleware(sessions)

	RegisterAuthRoutes(r, authd, authHandler)
	RegisterChannelRoutes(r, authd, channelHandler)
	RegisterAdminRoutes(r, authd, adminHandler)
}

func RegisterAuthRoutes(r *gin.Engine, authd gin.HandlerFunc, authHandler *handlers.AuthHandler) {
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/register", authHandler.Register) // 注册
		authGroup.POST("/login", authHandler.Login)       // 登录
	}
	authGroup.Use(authd)
	{
		authGroup.POST("/logout", authHandler.Logout) // 登出
		authGroup.GET("/check", authHandler.WhoAmI)   // 会话校验
	}
}

func RegisterChannelRoutes(r *gin.Engine, authd gin.HandlerFunc, channelHandler *handlers.ChannelHandler) {
	channelGroup := r.Group("/api/v1/channels")
	channelGroup.Use(authd)
	{
		channelGroup.GET("", channelHandler.ListChannels)
		channelGroup.GET("/mine", channelHandler.MyChannels)
		channelGroup.GET("/unread", channelHandler.UnreadChannels)
		channelGroup.POST("", channelHandler.CreateChannel)
		channelGroup.POST("/dm", channelHandler.CreateDMChannel)
		channelGroup.DELETE("/:name", channelHandler.DeleteChannel)
		channelGroup.POST("/:name/join", channelHandler.JoinChannel)

		channelGroup.GET("/:name", channelHandler.GetChannelData)
		channelGroup.POST("/:name/messages", channelHandler.SendMessage)
		channelGroup.GET("/:name/latest", channelHandler.LatestMessage)
		channelGroup.POST("/:name/ack", channelHandler.MarkSeen) // 确认消息已读
		channelGroup.GET("/:name/admins/count", channelHandler.AdminCount)
	}

	userGroup := r.Group("/api/v1/users")
	userGroup.Use(authd)
	{
		userGroup.GET("/search", channelHandler.SearchUsers)
	}
}

func RegisterAdminRoutes(r *gin.Engine, authd gin.HandlerFunc, adminHandler *handlers.AdminHandler) {
	adminGroup := r.Group("/api/v1/admin")
	adminGroup.Use(authd)
	{
		adminGroup.GET("/check", adminHandler.CheckAdmin)
		adminGroup.PATCH("/users/:username/role", adminHandler.SetRole)
		adminGroup.DELETE("/messages/:id", adminHandler.DeleteMessage)
	}
}

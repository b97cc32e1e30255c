package api

import (
	"Atelier/internal/api/middleware"
	"Atelier/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/me", group.UserHandler.Me)

				profileGroup := authGroup.Group("/profile")
				{
					profileGroup.POST("", group.ProfileHandler.Create)
					profileGroup.GET("", group.ProfileHandler.GetOwn)
					profileGroup.PUT("", group.ProfileHandler.Update)
					profileGroup.POST("/avatar", group.ProfileHandler.UploadAvatar)
					profileGroup.GET("/public-profile/:user_id", group.ProfileHandler.PublicProfile)

					profileGroup.POST("/post_create", group.PostHandler.Create)
					profileGroup.GET("/post_get", group.PostHandler.List)
					profileGroup.GET("/post_get/:id", group.PostHandler.Get)
					profileGroup.PUT("/post_u/:id", group.PostHandler.Update)
					profileGroup.DELETE("/post_delete/:id", group.PostHandler.Delete)
					profileGroup.GET("/post_view/:id", group.PostHandler.View)

					profileGroup.POST("/like/:post_id", group.PostActionHandler.ToggleLike)
					profileGroup.GET("/like_count/:post_id", group.PostActionHandler.LikeCount)
					profileGroup.POST("/comment/:id", group.PostActionHandler.AddComment)
				}
			}
		}

		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.POST("/login", group.AdminHandler.Login)

			// 需要管理员 Token
			authGroup := adminGroup.Group("")
			authGroup.Use(middleware.AdminAuthMiddleware())
			{
				authGroup.GET("/post", group.AdminHandler.ListPosts)
				authGroup.GET("/post/:id", group.AdminHandler.GetPost)
				authGroup.DELETE("/post/:id", group.PostHandler.AdminDelete)
				authGroup.GET("/profile", group.AdminHandler.ListProfiles)
				authGroup.PUT("/role", group.AdminHandler.UpdateRole)
				authGroup.PUT("/editPost/:post_id", group.PostHandler.AdminUpdate)
				authGroup.DELETE("/deleteProfile/:id", group.AdminHandler.DeleteProfile)
			}
		}
	}

	return r
}

package router

import (
	"github.com/gin-gonic/gin"

	"ideaspark/internal/handlers"
	"ideaspark/internal/middleware"
	"ideaspark/internal/store"
	"ideaspark/internal/utils"
)

func RegisterRoutes(r *gin.Engine, st *store.Store, cache *utils.Cache) {
	r.Use(middleware.LoadUser(st))

	// Handlers
	ideaHandler := handlers.NewIdeaHandler(st, cache)
	voteHandler := handlers.NewVoteHandler(st, cache)
	bookmarkHandler := handlers.NewBookmarkHandler(st)
	authHandler := handlers.NewAuthHandler(st)
	aiHandler := handlers.NewAIHandler(st)

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.GET("/ideas", ideaHandler.List)                  // 创意列表（搜索/分类/排序/分页）
	api.GET("/ideas/trending", ideaHandler.Trending)     // 热门创意
	api.GET("/ideas/:id", ideaHandler.Detail)            // 创意详情
	api.GET("/ideas/:id/export", ideaHandler.Export)     // 下载创意文本
	api.GET("/hero-image", aiHandler.HeroImage)          // 首页横幅图
	api.POST("/ideas/suggest-tags", aiHandler.SuggestTags)
	api.POST("/ideas/:id/chat", aiHandler.Chat)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/ideas", ideaHandler.Create)             // 提交创意
		authorized.DELETE("/ideas/:id", ideaHandler.Delete)       // 删除创意
		authorized.POST("/ideas/:id/upvote", voteHandler.Upvote)  // 点赞
		authorized.POST("/ideas/:id/save", bookmarkHandler.Toggle) // 收藏/取消收藏
		authorized.GET("/saved", bookmarkHandler.SavedList)       // 我的收藏
	}
}

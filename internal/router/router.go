package router

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/config"
	"campushub/internal/handlers"
	"campushub/internal/middleware"
	"campushub/internal/services"
)

const sessionName = "campushub_session"

// New builds the engine with sessions, templates and every route.
func New(svc *services.Services, cfg config.ServerConfig, log *zap.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 30, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))

	renderer, err := handlers.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.HTMLRender = renderer

	r.Use(middleware.LoadIdentity(svc.Identities, log))
	r.Use(middleware.RequestLogger(log.Named("http")))

	RegisterRoutes(r, svc, cfg, log)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, svc *services.Services, cfg config.ServerConfig, log *zap.Logger) {
	// Handlers
	authHandler := handlers.NewAuthHandler(svc, log)
	boardHandler := handlers.NewBoardHandler(svc, log)
	postHandler := handlers.NewPostHandler(svc, log)
	commentHandler := handlers.NewCommentHandler(svc, log)
	pollHandler := handlers.NewPollHandler(svc, log)
	moderationHandler := handlers.NewModerationHandler(svc, log)
	marqueeHandler := handlers.NewMarqueeHandler(svc, log)
	adminHandler := handlers.NewAdminHandler(svc, log)
	feedHandler := handlers.NewFeedHandler(svc, cfg.SiteURL, log)
	uploadHandler := handlers.NewUploadHandler(log)

	// Public routes
	r.GET("/", boardHandler.Index)
	r.GET("/robots.txt", feedHandler.RobotsTxt)
	r.GET("/feed.xml", feedHandler.RSSFeed)

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/session", authHandler.Session)

		api.GET("/posts", postHandler.List)
		api.GET("/posts/:id", postHandler.Get)
		api.GET("/authors", postHandler.Authors)

		api.GET("/posts/:id/comments", commentHandler.List)
		api.POST("/posts/:id/comments", commentHandler.Create)
		api.POST("/comments/:id/report", commentHandler.Report)

		api.GET("/posts/:id/poll", pollHandler.Get)
		api.POST("/polls/:id/vote", pollHandler.Vote)

		api.GET("/marquees", marqueeHandler.List)
	}

	// Moderator routes. The stores check privileges again, and the super
	// admin checks live only there.
	mod := r.Group("/api")
	mod.Use(middleware.ModeratorRequired())
	{
		mod.POST("/posts", postHandler.Create)
		mod.PUT("/posts/:id", postHandler.Update)
		mod.DELETE("/posts/:id", postHandler.Delete)
		mod.POST("/posts/:id/poll", pollHandler.Create)
		mod.POST("/uploads", uploadHandler.Upload)

		mod.GET("/comments/reported", commentHandler.ListReported)
		mod.DELETE("/comments/:id/reports", commentHandler.Unreport)
		mod.DELETE("/comments/:id", commentHandler.Delete)

		mod.GET("/blocked-users", moderationHandler.ListBlocked)
		mod.POST("/blocked-users", moderationHandler.Block)
		mod.DELETE("/blocked-users/:name", moderationHandler.Unblock)

		mod.POST("/marquees", marqueeHandler.Create)
		mod.DELETE("/marquees/:id", marqueeHandler.Delete)

		mod.GET("/admins", adminHandler.ListAdmins)
		mod.POST("/admins", adminHandler.AddAdmin)
		mod.DELETE("/admins/:email", adminHandler.RemoveAdmin)

		mod.GET("/admin-updates", adminHandler.ListUpdates)
		mod.POST("/admin-updates", adminHandler.AddUpdate)
		mod.DELETE("/admin-updates/:id", adminHandler.DeleteUpdate)
	}
}

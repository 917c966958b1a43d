package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/handlers"
	"github.com/thereayou/chirp/internal/middleware"
	"github.com/thereayou/chirp/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	db *database.Database,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	postH *handlers.PostHandler,
	streamH *handlers.FeedStreamHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb, db))
	{
		api.GET("/me", userH.GetMe)
		api.PATCH("/me", userH.UpdateMe)

		api.GET("/users/:username", userH.GetProfile)
		api.POST("/users/:username/follow", userH.Follow)
		api.DELETE("/users/:username/follow", userH.Unfollow)
		api.GET("/users/:username/followers", userH.Followers)
		api.GET("/users/:username/following", userH.Following)
		api.GET("/users/:username/posts", postH.UserPosts)

		api.POST("/posts", postH.CreatePost)
		api.GET("/feed", postH.GetFeed)
		api.GET("/explore", postH.Explore)
	}

	// Websocket uses its own auth since browsers cannot set headers on
	// the upgrade request.
	stream := r.Group("/api/v1/feed")
	stream.Use(middleware.WSAuthMiddleware(jwtMgr, rdb))
	{
		stream.GET("/stream", streamH.Stream)
	}
}

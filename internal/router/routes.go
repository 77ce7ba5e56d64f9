package router

import (
	"github.com/gin-gonic/gin"
	"github.com/members-api/go-api-server/internal/auth"
	"github.com/members-api/go-api-server/internal/config"
	"github.com/members-api/go-api-server/internal/member"
	"github.com/members-api/go-api-server/internal/meta"
	"github.com/members-api/go-api-server/internal/shared/database"
	sharedError "github.com/members-api/go-api-server/internal/shared/error"
	"github.com/members-api/go-api-server/internal/shared/middleware"
	"github.com/members-api/go-api-server/internal/shared/token"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB) {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// repository
	userRepository := auth.NewUserRepository()
	memberRepository := member.NewMemberRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	// service
	authService := auth.NewAuthService(db.DB, userRepository, tokenManager)
	memberService := member.NewMemberService(db.DB, memberRepository)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService)

	jwtGuard := middleware.JWT(cfg)

	// Token issuance (credentials in query, no bearer auth)
	router.GET("/auth", authHandler.Token)

	members := router.Group("/members")
	members.Use(jwtGuard)
	{
		members.GET("", memberHandler.List)
		members.POST("", memberHandler.Create)
		members.GET("/:id", memberHandler.Get)
		members.PATCH("/:id", memberHandler.Update)
		members.DELETE("/:id", memberHandler.Delete)
	}

	// Unmatched routes run the same auth guard first: unauthenticated callers
	// get 401 and learn nothing about which routes exist.
	router.NoRoute(jwtGuard, func(c *gin.Context) {
		c.JSON(sharedError.NotFound.Status, sharedError.NotFound)
	})
}

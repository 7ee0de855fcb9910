package app

import (
	"strings"

	"github.com/SpyrosRoum/budgetman/internal/auth"
	"github.com/SpyrosRoum/budgetman/internal/cache"
	"github.com/SpyrosRoum/budgetman/internal/config"
	"github.com/SpyrosRoum/budgetman/internal/handlers"
	"github.com/SpyrosRoum/budgetman/internal/repo"
	"github.com/SpyrosRoum/budgetman/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "github.com/SpyrosRoum/budgetman/docs"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) error {
	tokens, err := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL.Duration())
	if err != nil {
		return err
	}
	userRepo := repo.NewPGUserRepo(db)
	authSvc := auth.NewService(userRepo, tokens)

	budgetCache := cache.NewBudgetCache(rdb, cfg.Redis.DefaultTTL.Duration())
	accountSvc := service.NewAccountService(repo.NewPGAccountRepo(db), budgetCache)
	tagSvc := service.NewTagService(repo.NewPGTagRepo(db), budgetCache)

	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	// JSON API surface: failures are JSON bodies.
	api := r.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(authSvc)
	api.POST("/login", authHandler.Login)

	protected := api.Group("", auth.RequireUser(authSvc, auth.FailJSON))
	protected.GET("/me", authHandler.Me)
	accountHandler := handlers.NewAccountHandler(accountSvc)
	protected.GET("/accounts", accountHandler.List)
	protected.GET("/accounts/:id", accountHandler.GetByID)
	protected.POST("/accounts", accountHandler.Create)
	tagHandler := handlers.NewTagHandler(tagSvc)
	protected.GET("/tags", tagHandler.List)
	protected.GET("/tags/:id", tagHandler.GetByID)
	protected.POST("/tags", tagHandler.Create)

	// HTML surface: failures redirect to the login page.
	cookieMaxAge := int(tokens.TTL().Seconds())
	views := handlers.NewViewHandler(authSvc, accountSvc, tagSvc, cookieMaxAge)
	r.GET("/login", views.LoginPage)
	r.POST("/login", views.LoginForm)
	r.GET("/logout", views.Logout)
	r.GET("/500", views.ServerError)

	pages := r.Group("", auth.RequireUser(authSvc, auth.FailRedirect("/login")))
	pages.GET("/", views.Index)
	pages.GET("/accounts", views.AccountsPage)
	pages.GET("/tags", views.TagsPage)

	// The surface for "not found" follows the path prefix, same as auth
	// failures: JSON under /api, HTML everywhere else.
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(404, gin.H{"error": "resource not found"})
			return
		}
		views.NotFound(c)
	})

	return nil
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

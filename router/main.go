package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/config"
	"github.com/lernovate/admin-api/handlers"
	admin_handlers "github.com/lernovate/admin-api/handlers/admin"
	auth_handlers "github.com/lernovate/admin-api/handlers/auth"
	course_handlers "github.com/lernovate/admin-api/handlers/course"
	institution_handlers "github.com/lernovate/admin-api/handlers/institution"
	user_handlers "github.com/lernovate/admin-api/handlers/user"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/services/spaces"
	"github.com/lernovate/admin-api/utils/auth"
	"github.com/lernovate/admin-api/utils/cache"
	"github.com/lernovate/admin-api/utils/metrics"
	"github.com/lernovate/admin-api/utils/middleware"
)

// SetupRoutes wires middleware, handlers and route groups onto the app.
func SetupRoutes(app *fiber.App, repos *repository.Repositories, getEnv *config.EnvironmentVariable) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        getEnv.JWT_ISSUER,
	})

	// Redis backs token revocation and brute force protection. Both degrade
	// gracefully when it is unreachable.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		var err error
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
			redisCache = nil
		}
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, repos.Users, redisCache)

	var spacesClient *spaces.Client
	spacesConfig := spaces.Config{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	}
	if spacesConfig.Configured() {
		var err error
		spacesClient, err = spaces.NewClient(spacesConfig)
		if err != nil {
			log.Printf("Warning: Failed to create object store client: %v. Media uploads will be disabled.", err)
		}
	}

	authHandler := auth_handlers.NewHandler(repos.Users, jwtManager, bruteForceProtection, authMiddleware)
	institutionHandler := institution_handlers.NewHandler(repos.Institutions)
	courseHandler := course_handlers.NewHandler(repos.Courses)
	userHandler := user_handlers.NewHandler(repos.Users)
	settingsHandler := admin_handlers.NewSettingsHandler(repos.Settings)
	analyticsHandler := admin_handlers.NewAnalyticsHandler(repos)
	mediaHandler := admin_handlers.NewMediaHandler(spacesClient)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check and metrics (public)
	app.Get("/ping", handlers.Ping)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckLocked(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	requireAdmin := authMiddleware.RequireRole(model.RoleAdmin)
	requireStaff := authMiddleware.RequireRole(model.RoleAdmin, model.RoleFaculty)

	// Institution routes. Reads are public, mutations are admin only.
	institutions := api.Group("/institutions")
	institutions.Get("/", institutionHandler.List)
	institutions.Get("/:id", institutionHandler.Get)
	institutions.Post("/", authMiddleware.Required(), requireAdmin, institutionHandler.Create)
	institutions.Put("/:id", authMiddleware.Required(), requireAdmin, institutionHandler.Update)
	institutions.Delete("/:id", authMiddleware.Required(), requireAdmin, institutionHandler.Delete)

	// Course routes. Mutations allow faculty as well as admins.
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.List)
	courses.Get("/:id", courseHandler.Get)
	courses.Post("/", authMiddleware.Required(), requireStaff, courseHandler.Create)
	courses.Put("/:id", authMiddleware.Required(), requireStaff, courseHandler.Update)
	courses.Delete("/:id", authMiddleware.Required(), requireStaff, courseHandler.Delete)

	// User routes. Mutations are admin only.
	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Post("/", authMiddleware.Required(), requireAdmin, userHandler.Create)
	users.Put("/:id", authMiddleware.Required(), requireAdmin, userHandler.Update)
	users.Delete("/:id", authMiddleware.Required(), requireAdmin, userHandler.Delete)

	// Admin panel routes
	admin := api.Group("/admin", authMiddleware.Required(), requireAdmin)
	admin.Get("/analytics/overview", analyticsHandler.GetOverview)
	admin.Get("/settings", settingsHandler.List)
	admin.Put("/settings", settingsHandler.BulkUpdate)
	admin.Get("/settings/:key", settingsHandler.Get)
	admin.Put("/settings/:key", settingsHandler.Update)
	admin.Delete("/settings/:key", settingsHandler.Delete)
	admin.Post("/media", mediaHandler.Upload)
	admin.Delete("/media/*", mediaHandler.Delete)
}

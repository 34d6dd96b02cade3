package router

import (
	"log"
	"os"
	"time"

	"github.com/Amman-Akbar/GlobalApply/database"
	"github.com/Amman-Akbar/GlobalApply/handlers"
	admin_handlers "github.com/Amman-Akbar/GlobalApply/handlers/admin"
	auth_handlers "github.com/Amman-Akbar/GlobalApply/handlers/auth"
	institute_handlers "github.com/Amman-Akbar/GlobalApply/handlers/institute"
	subscription_handlers "github.com/Amman-Akbar/GlobalApply/handlers/subscription"
	wishlist_handlers "github.com/Amman-Akbar/GlobalApply/handlers/wishlist"
	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/services"
	"github.com/Amman-Akbar/GlobalApply/utils"
	"github.com/Amman-Akbar/GlobalApply/utils/auth"
	"github.com/Amman-Akbar/GlobalApply/utils/cache"
	"github.com/Amman-Akbar/GlobalApply/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "globalapply-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis backs the listing cache and brute force protection. Both degrade
	// gracefully when it is unreachable.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Listing cache and brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	listingService := services.NewListingService(db, redisCache)
	instituteService := services.NewInstituteService(db, listingService)
	subscriptionService := services.NewSubscriptionService(db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	instituteHandler := institute_handlers.NewInstituteHandler(db, instituteService, listingService)
	subscriptionHandler := subscription_handlers.NewSubscriptionHandler(db, subscriptionService)
	wishlistHandler := wishlist_handlers.NewWishlistHandler(db)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Institute routes. The public listing views are registered before the
	// :id routes so "featured" is never parsed as an id.
	institute := api.Group("/institute")
	institute.Get("/featured", instituteHandler.Featured)
	institute.Get("/trending", instituteHandler.Trending)
	institute.Get("/latest", instituteHandler.Latest)

	institute.Get("/", authMiddleware.RequireAdmin(), instituteHandler.ListInstitutes)
	institute.Get("/:id", instituteHandler.GetInstitute)
	institute.Put("/:id", authMiddleware.Required(), instituteHandler.UpdateInstitute)
	institute.Delete("/:id", authMiddleware.Required(), middleware.AdminAuditLog(db, "institute_delete", "institutes"), instituteHandler.DeleteInstitute)

	// Admin review of pending institutes
	institute.Put("/:id/approve", authMiddleware.RequireAdmin(), middleware.AdminAuditLog(db, "institute_approve", "institutes"), instituteHandler.Approve)
	institute.Put("/:id/reject", authMiddleware.RequireAdmin(), middleware.AdminAuditLog(db, "institute_reject", "institutes"), instituteHandler.Reject)

	// Active programs grouped by department (public)
	api.Get("/programs/active", instituteHandler.ActivePrograms)

	// Department and program management (owner or admin)
	institute.Post("/:id/departments", authMiddleware.Required(), instituteHandler.CreateDepartment)
	api.Post("/departments/:id/programs", authMiddleware.Required(), instituteHandler.CreateProgram)
	api.Put("/programs/:id", authMiddleware.Required(), instituteHandler.UpdateProgram)
	api.Delete("/programs/:id", authMiddleware.Required(), instituteHandler.DeleteProgram)

	// Subscription plan catalog (public reads, admin writes)
	subscriptions := api.Group("/subscriptions")
	subscriptions.Get("/", subscriptionHandler.ListPlans)
	subscriptions.Post("/", authMiddleware.RequireAdmin(), middleware.AdminAuditLog(db, "plan_create", "subscription_plans"), subscriptionHandler.CreatePlan)

	// Assignment lifecycle. Assign/remove are owner-or-admin, approve/reject
	// are admin only.
	subscriptions.Post("/assign", authMiddleware.RequireRole(model.RoleInstitute, model.RoleAdmin), subscriptionHandler.Assign)
	subscriptions.Post("/approve", authMiddleware.RequireAdmin(), middleware.AdminAuditLog(db, "subscription_approve", "institutes"), subscriptionHandler.Approve)
	subscriptions.Post("/reject", authMiddleware.RequireAdmin(), middleware.AdminAuditLog(db, "subscription_reject", "institutes"), subscriptionHandler.Reject)
	subscriptions.Post("/remove", authMiddleware.RequireRole(model.RoleInstitute, model.RoleAdmin), subscriptionHandler.Remove)

	subscriptions.Get("/:id", subscriptionHandler.GetPlan)
	subscriptions.Put("/:id", authMiddleware.RequireAdmin(), middleware.AdminAuditLog(db, "plan_update", "subscription_plans"), subscriptionHandler.UpdatePlan)
	subscriptions.Delete("/:id", authMiddleware.RequireAdmin(), middleware.AdminAuditLog(db, "plan_delete", "subscription_plans"), subscriptionHandler.DeletePlan)

	// Wishlist routes (students)
	wishlist := api.Group("/wishlist", authMiddleware.RequireRole(model.RoleStudent))
	wishlist.Get("/", wishlistHandler.List)
	wishlist.Post("/add", wishlistHandler.Add)
	wishlist.Delete("/remove", wishlistHandler.Remove)
	wishlist.Get("/check", wishlistHandler.Check)

	// Admin user management
	admin := api.Group("/admin", authMiddleware.RequireAdmin())
	admin.Get("/stats", func(c *fiber.Ctx) error { return admin_handlers.GetPlatformStats(c, store) })
	admin.Get("/users", func(c *fiber.Ctx) error { return admin_handlers.ListUsers(c, store) })
	admin.Get("/users/:id", func(c *fiber.Ctx) error { return admin_handlers.GetUser(c, store) })
	admin.Put("/users/:id", middleware.AdminAuditLog(db, "user_update", "users"), func(c *fiber.Ctx) error { return admin_handlers.UpdateUser(c, store) })
	admin.Delete("/users/:id", middleware.AdminAuditLog(db, "user_delete", "users"), func(c *fiber.Ctx) error { return admin_handlers.DeleteUser(c, store) })
	admin.Post("/users/:id/reset-password", middleware.AdminAuditLog(db, "password_reset", "users"), func(c *fiber.Ctx) error { return admin_handlers.ResetUserPassword(c, store) })
}

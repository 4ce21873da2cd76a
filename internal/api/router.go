package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contactdesk/contact-management-api/internal/api/handler"
	"github.com/contactdesk/contact-management-api/internal/api/middleware"
	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
	"github.com/contactdesk/contact-management-api/internal/core/service"
	mongodb "github.com/contactdesk/contact-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/contactdesk/contact-management-api/internal/infrastructure/db/redis"
	"github.com/contactdesk/contact-management-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Everything under /api/auth is public; the auth gate runs globally but
// passes anonymous requests through, so per-route role requirements do the
// actual gating.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokens ports.TokenEngine, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("contactapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	contactRepo := mongodb.NewContactRepository(db, mongodb.CollectionContacts)
	duplicateRepo := mongodb.NewContactRepository(db, mongodb.CollectionDuplicates)

	authService := service.NewAuthService(userRepo, roleRepo, tokens, log)
	contactService := service.NewContactService(contactRepo, log)
	duplicateService := service.NewDuplicateService(duplicateRepo, redisdb.NewMergeLock(rdb), log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService, mongodb.CollectionContacts)
	duplicateHandler := handler.NewDuplicateContactHandler(duplicateService, mongodb.CollectionDuplicates)
	userHandler := handler.NewUserHandler(userService)

	e.Use(middleware.Auth(tokens, userRepo))
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	anyRole := middleware.RequireRoles(domain.RoleAdmin, domain.RoleUser)

	// --- Auth routes (public) ---
	auth := e.Group("/api/auth")
	auth.POST("/signup/user", authHandler.SignupUser)
	auth.POST("/signup/admin", authHandler.SignupAdmin)
	auth.POST("/login/user", authHandler.LoginUser)
	auth.POST("/login/admin", authHandler.LoginAdmin)

	// --- Contact routes ---
	contacts := e.Group("/api/contacts")
	contacts.POST("/register", contactHandler.Create, anyRole)
	contacts.GET("/retrieve", contactHandler.GetAll, adminOnly)
	contacts.GET("/retrieve/:id", contactHandler.GetByID, adminOnly)
	contacts.PUT("/update/:id", contactHandler.Update, adminOnly)
	contacts.DELETE("/delete/:id", contactHandler.Delete, adminOnly)

	// --- Duplicate-prone contact routes ---
	duplicates := e.Group("/api/duplicateContacts")
	duplicates.POST("/register", duplicateHandler.Create, anyRole)
	duplicates.GET("/retrieve", duplicateHandler.GetAll, adminOnly)
	duplicates.GET("/retrieve/:id", duplicateHandler.GetByID, adminOnly)
	duplicates.PUT("/update/:id", duplicateHandler.Update, adminOnly)
	duplicates.DELETE("/delete/:id", duplicateHandler.Delete, adminOnly)
	duplicates.POST("/mergeDuplicates", duplicateHandler.MergeDuplicates, adminOnly)

	// --- User routes ---
	users := e.Group("/users")
	users.GET("/current", userHandler.Current, anyRole)
	users.GET("/all", userHandler.All, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Observability (no auth required) ---
	healthHandler := handlers.NewHealthHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

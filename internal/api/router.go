// Package api is the HTTP surface of the service.
package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lalith-99/propmaster/internal/events"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/repository"
	"github.com/lalith-99/propmaster/internal/settings"
	"github.com/lalith-99/propmaster/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps is everything the router needs. Hub may be nil, which disables
// the activity websocket.
type Deps struct {
	Store       *store.Store
	Prefs       *settings.Preferences
	Users       repository.UserRepository
	Hub         *events.Hub
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	Now         func() time.Time
	Logger      *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.TokenTTL == 0 {
		d.TokenTTL = 24 * time.Hour
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), middleware.Metrics(), middleware.CORS(d.CORSOrigins))

	r.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authH := NewAuthHandler(d.Store, d.Users, d.JWTSecret, d.TokenTTL, d.Logger)
	r.POST("/v1/auth/login", authH.Login)

	v1 := r.Group("/v1", middleware.AuthMiddleware(d.JWTSecret))
	v1.GET("/auth/me", authH.Me)
	v1.POST("/auth/logout", authH.Logout)

	manage := v1.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleManager))
	manage.GET("/users", authH.ListUsers)
	manage.POST("/users", authH.CreateUser)

	records := NewRecordsHandler(d.Store, d.Logger)
	registerResource(manage, records, "tenants", tenantResource(d.Store))
	registerResource(manage, records, "apartments", apartmentResource(d.Store))
	registerResource(manage, records, "contracts", contractResource(d.Store))
	registerResource(manage, records, "transactions", transactionResource(d.Store))
	registerResource(manage, records, "maintenance", maintenanceResource(d.Store))
	registerResource(manage, records, "reports", reportResource(d.Store))

	archive := NewArchiveHandler(d.Store, d.Logger)
	manage.GET("/archive/deleted", archive.Deleted)
	manage.POST("/archive/deleted/:kind/:id/restore", archive.RestoreDeleted)
	manage.GET("/archive/archived", archive.Archived)
	manage.POST("/archive/archived/:kind/:id/restore", archive.RestoreArchived)
	manage.POST("/intents", archive.Apply)

	insights := NewInsightsHandler(d.Store, d.Prefs, d.Now, d.Logger)
	manage.GET("/dashboard", insights.Dashboard)
	manage.GET("/notifications", insights.Notifications)
	manage.GET("/finance/summary", insights.Finance)
	manage.GET("/contracts/expiring", insights.ExpiringContracts)
	manage.GET("/tenants/:id/history", insights.TenantHistory)
	manage.GET("/reports/summary", insights.ReportSummary)
	manage.GET("/reports/export", insights.ExportReport)

	workflows := NewWorkflowHandler(d.Store, d.Logger)
	manage.POST("/contracts/:id/renew", workflows.Renew)
	manage.POST("/transactions/:id/review", workflows.ReviewPayment)

	prefs := NewSettingsHandler(d.Store, d.Prefs, d.Logger)
	manage.GET("/settings", prefs.Get)
	manage.PUT("/settings/owner", prefs.SaveOwner)
	manage.PUT("/settings/language", prefs.SaveLanguage)
	manage.PUT("/settings/theme", prefs.SaveTheme)
	manage.GET("/audit-log", prefs.AuditLog)

	portal := NewPortalHandler(d.Store, d.Logger)
	tenant := v1.Group("/portal", middleware.RequireRole(models.RoleTenant))
	tenant.GET("/me", portal.Me)
	tenant.GET("/transactions", portal.Transactions)
	tenant.GET("/maintenance", portal.Maintenance)
	tenant.POST("/payments", portal.SubmitPayment)
	tenant.POST("/maintenance", portal.OpenMaintenance)

	if d.Hub != nil {
		activity := NewActivityHandler(d.Hub, d.CORSOrigins, d.Logger)
		manage.GET("/ws/activity", activity.Serve)
	}

	return r
}

// originChecker accepts requests without an Origin header (non-browser
// clients) and those from an allowed origin.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin) || slices.Contains(allowed, "*")
	}
}

func newUpgrader(allowed []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowed),
	}
}

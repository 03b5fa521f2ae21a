package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/abitur-registration/api/swagger"
	"github.com/noah-isme/abitur-registration/internal/handler"
	internalmiddleware "github.com/noah-isme/abitur-registration/internal/middleware"
	"github.com/noah-isme/abitur-registration/internal/service"
	"github.com/noah-isme/abitur-registration/pkg/config"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/logger"
	reqidmiddleware "github.com/noah-isme/abitur-registration/pkg/middleware/requestid"
	"github.com/noah-isme/abitur-registration/pkg/response"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Public    *handler.PublicHandler
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Cohorts   *handler.CohortHandler
	Admins    *handler.AdminUserHandler
	Export    *handler.ExportHandler
	Metrics   *handler.MetricsHandler
}

// RouterConfig carries the cross-cutting pieces the router needs.
type RouterConfig struct {
	Env            string
	CookieName     string
	MetricsEnabled bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Sessions       internalmiddleware.SessionValidator
}

// NewRouter builds the gin engine with every public and admin route.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(cfg.Logger))
	if cfg.MetricsEnabled {
		r.Use(internalmiddleware.Metrics(cfg.Metrics))
	}
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if cfg.MetricsEnabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/", h.Public.Home)
	r.GET("/datenschutz", h.Public.Privacy)
	r.POST("/submit", h.Public.Submit)

	r.GET("/admin", internalmiddleware.OptionalSession(cfg.Sessions, cfg.CookieName), h.Auth.LoginPage)
	r.POST("/admin", h.Auth.Login)
	r.POST("/admin/login", h.Auth.Login)

	audit := func(action, resource string) gin.HandlerFunc {
		return internalmiddleware.Audit(cfg.Logger, action, resource)
	}

	requireSession := internalmiddleware.RequireSession(cfg.Sessions, cfg.CookieName)

	admin := r.Group("/admin")
	admin.Use(requireSession)
	{
		admin.GET("/logout", audit("logout", "session"), h.Auth.Logout)

		admin.GET("/dashboard", h.Dashboard.Dashboard)
		admin.GET("/delete/:id", audit("delete", "student"), h.Dashboard.DeleteStudent)

		admin.GET("/jahrgaenge", h.Cohorts.List)
		admin.POST("/jahrgang/add", audit("create", "cohort"), h.Cohorts.Add)
		admin.GET("/jahrgang/toggle/:id", audit("toggle", "cohort"), h.Cohorts.Toggle)
		admin.GET("/jahrgang/delete/:id", audit("delete", "cohort"), h.Cohorts.Delete)

		admin.GET("/export/csv", audit("export", "students"), h.Export.CSV)
		admin.GET("/export/csv/:jahrgang_id", audit("export", "students"), h.Export.CSV)
		admin.GET("/export/pdf", audit("export", "students"), h.Export.PDF)
		admin.GET("/export/pdf/:jahrgang_id", audit("export", "students"), h.Export.PDF)

		admin.GET("/benutzer", h.Admins.List)
		admin.POST("/benutzer/add", audit("create", "admin"), h.Admins.Add)
		admin.POST("/benutzer/change-password", audit("change_password", "admin"), h.Admins.ChangePassword)
		admin.GET("/benutzer/delete/:id", audit("delete", "admin"), h.Admins.Delete)
	}

	// Unknown admin paths go through the same session gate, so anonymous clients land on the login page.
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/admin/") {
			requireSession(c)
			if c.IsAborted() {
				return
			}
		}
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	return r
}

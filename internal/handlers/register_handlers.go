package handlers

import (
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
	"github.com/fortresspm/bookkeeping_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerEntryRoutes(v1, services.Entry)
	registerPaymentRoutes(v1, services.Payment)
	registerReportRoutes(v1, services.Ledger)
	registerAccountRoutes(v1, services.Account)
}

// RegisterValidators installs custom binding validations. A status filter
// token is valid when it expands to at least one concrete status.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("statusfilter", func(fl validator.FieldLevel) bool {
			return len(domain.FilterValues(fl.Field().String())) > 0
		})
	}
}

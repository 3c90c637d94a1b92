package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	userrepo "customer-panel/internal/repository/user"
	"customer-panel/internal/service/access"
	"customer-panel/internal/service/courses"
	"customer-panel/internal/service/filter"
	"customer-panel/internal/service/orders"
	"customer-panel/internal/service/session"
)

// Deps carries the wired services the handlers delegate to.
type Deps struct {
	Guard    *access.Guard
	Courses  *courses.Aggregator
	Orders   *orders.Aggregator
	Filter   *filter.Engine
	Users    userrepo.Repository
	Sessions *session.Manager

	CORSAllowOrigins []string
}

// buildRouter wires routes for the panel API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	if len(deps.CORSAllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSAllowOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &panelHandler{deps: deps, logger: logger}
	panel := router.Group("/panel")
	panel.POST("/get_customer_details", h.getCustomerDetails)
	panel.POST("/filter_customers", h.filterCustomers)
	panel.POST("/search_customers", h.searchCustomers)

	return router
}

package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdesk/internal/catalog"
	"salesdesk/internal/metrics"
	"salesdesk/internal/session"
)

// Deps carries everything the routes need.
type Deps struct {
	Catalog     *catalog.Index
	References  *catalog.ReferenceData
	Sessions    *session.Store
	JournalPool *pgxpool.Pool // nil when the journal is in memory
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.JournalPool))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/catalog/products", h.listProducts)
	router.POST("/catalog/reload", h.reloadCatalog)

	router.GET("/references/clients", h.listClients)
	router.GET("/references/payment-forms", h.listPaymentForms)
	router.GET("/references/payment-conditions", h.listPaymentConditions)
	router.POST("/references/reload", h.reloadReferences)

	router.POST("/sessions", h.createSession)
	router.GET("/sessions/:id", h.getSession)
	router.DELETE("/sessions/:id", h.deleteSession)
	router.POST("/sessions/:id/items", h.addItem)
	router.PATCH("/sessions/:id/items/:code", h.updateItem)
	router.DELETE("/sessions/:id/items/:code", h.removeItem)
	router.PUT("/sessions/:id/discount", h.setDiscount)
	router.PUT("/sessions/:id/client", h.selectClient)
	router.PUT("/sessions/:id/payment", h.selectPayment)
	router.POST("/sessions/:id/submit", h.submit)

	return router
}

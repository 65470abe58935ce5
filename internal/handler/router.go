package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kapkurtar/internal/handler/api"
	"kapkurtar/internal/handler/middleware"
	"kapkurtar/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	offerHandler *api.OfferHandler,
	reservationHandler *api.ReservationHandler,
	merchantHandler *api.MerchantHandler,
	identity *middleware.IdentityMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, offerHandler, reservationHandler, merchantHandler, identity)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	offerHandler *api.OfferHandler,
	reservationHandler *api.ReservationHandler,
	merchantHandler *api.MerchantHandler,
	identity *middleware.IdentityMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		offers := apiGroup.Group("/offers")
		{
			addRoutes(offers, []route{
				{Method: http.MethodGet, Path: "/nearby", Handler: offerHandler.FindNearbyOffers},
				{Method: http.MethodGet, Path: "/:id", Handler: offerHandler.GetOffer},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(identity.Require(middleware.RoleClient))
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListClientReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
			})
		}

		merchant := apiGroup.Group("/merchant")
		merchant.Use(identity.Require(middleware.RoleMerchant))
		{
			addRoutes(merchant, []route{
				{Method: http.MethodPost, Path: "/offers", Handler: merchantHandler.CreateOffer},
				{Method: http.MethodGet, Path: "/offers", Handler: merchantHandler.ListOffers},
				{Method: http.MethodPatch, Path: "/offers/:id", Handler: merchantHandler.UpdateOffer},
				{Method: http.MethodDelete, Path: "/offers/:id", Handler: merchantHandler.DeactivateOffer},
				{Method: http.MethodGet, Path: "/reservations", Handler: merchantHandler.ListReservations},
				{Method: http.MethodPost, Path: "/reservations/:id/complete", Handler: merchantHandler.CompleteReservation},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

package components

import (
	"kapkurtar/internal/handler"
	"kapkurtar/internal/handler/api"
	"kapkurtar/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOfferHandler,
		api.NewReservationHandler,
		api.NewMerchantHandler,
		middleware.NewIdentityMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

package components

import (
	"go.uber.org/fx"

	"shareit/internal/handler"
	"shareit/internal/handler/api"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewUserHandler,
		api.NewItemHandler,
		api.NewBookingHandler,
		api.NewItemRequestHandler,
	),
	fx.Invoke(handler.NewRouter),
)

package api

import "github.com/RoyceAzure/lab/shopcenter/internal/api/handler"

type Server struct {
	CartHandler    *handler.CartHandler
	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
}

func NewServer(
	cartHandler *handler.CartHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
) *Server {
	return &Server{
		CartHandler:    cartHandler,
		UserHandler:    userHandler,
		ProductHandler: productHandler,
	}
}

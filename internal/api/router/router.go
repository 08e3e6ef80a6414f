package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api"
	m "github.com/RoyceAzure/lab/shopcenter/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.ActorMiddleware)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/carts", func(r chi.Router) {
			r.Post("/", server.CartHandler.CreateCart)
			r.Get("/{cid}", server.CartHandler.GetCartById)
			r.Put("/{cid}", server.CartHandler.UpdateCart)
			r.Delete("/{cid}", server.CartHandler.ClearCart)
			r.Post("/{cid}/products/{pid}", server.CartHandler.AddProductToCart)
			r.Put("/{cid}/products/{pid}", server.CartHandler.UpdateQuantity)
			r.Delete("/{cid}/products/{pid}", server.CartHandler.DeleteProduct)
			r.Post("/{cid}/purchase", server.CartHandler.CompletePurchase)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", server.UserHandler.CreateUser)
			r.Get("/", server.UserHandler.GetAllUsers)
			r.Post("/{uid}/documents", server.UserHandler.UploadDocuments)
			r.Put("/premium/{uid}", server.UserHandler.TogglePremium)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", server.ProductHandler.CreateProduct)
			r.Get("/", server.ProductHandler.GetAllProducts)
			r.Get("/{pid}", server.ProductHandler.GetProductByID)
		})
	})

	// 設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}

package http

import (
	"github.com/gin-gonic/gin"

	"github.com/feirafacil/catalogo-service/internal/config"
	"github.com/feirafacil/catalogo-service/internal/http/controller"
	"github.com/feirafacil/catalogo-service/internal/http/middleware"
)

// InitRouter mounts the catalog API onto the given engine.
func InitRouter(_ *config.Config, server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController) *gin.Engine {
	// Recovery first so a panic anywhere in the chain becomes a plain 500
	server.Use(middleware.Recovery())
	server.Use(middleware.RequestLogger())
	server.Use(middleware.CORS())

	server.GET("/ping", ctr.Ping)

	api := server.Group("/api")
	{
		api.GET("/produtos", productCtr.ListProducts)
		api.GET("/produtos/:id", productCtr.GetProduct)
		api.POST("/produtos", productCtr.CreateProduct)
		api.PUT("/produtos/:id", productCtr.UpdateProduct)
		api.DELETE("/produtos/:id", productCtr.DeleteProduct)
		api.POST("/validar-produto", productCtr.ValidateProduct)
	}

	return server
}

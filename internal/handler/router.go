package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openclaims/riskprice/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Documents *DocumentHandler
	Model     *ModelHandler
	Pricing   *PricingHandler
	Quotes    *QuoteHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/token", deps.Auth.Token)

	api.GET("/model/state", deps.Model.State)
	api.GET("/pricing/factor", deps.Pricing.Factor)
	api.GET("/products/:id/quote", deps.Quotes.Quote)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/documents", deps.Documents.Ingest)
	authGroup.POST("/model/retrain", deps.Model.Retrain)
	authGroup.POST("/purchases", deps.Quotes.Purchase)
	authGroup.POST("/pricing/apply", middleware.RateLimit(time.Second), deps.Pricing.Apply)
}

package route

import (
	"net/http"

	"github.com/bassista/go_recipes/internal/api/middleware"
	"github.com/bassista/go_recipes/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the engine with the global middleware chain and every API route.
func SetupRoutes(appCtx *app.App, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(log, appCtx.Config.Misc.HoneybadgerAPIKey, appCtx.Config.Misc.Environment))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	publicRouter := r.Group("")

	// All Public APIs
	timeout := appCtx.Config.Server.RequestTimeout

	NewConfigurationRouter(timeout, publicRouter, appCtx.Config)
	NewRecipeRouter(timeout, publicRouter, appCtx.Repo, appCtx.Index, appCtx.Drafts)
	NewDraftRouter(timeout, publicRouter, appCtx.Drafts, appCtx.Index)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

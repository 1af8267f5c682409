package route

import (
	"time"

	"github.com/bassista/go_recipes/internal/api/controller"
	"github.com/bassista/go_recipes/internal/api/middleware"
	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/repository"
	"github.com/gin-gonic/gin"
)

// NewRecipeRouter sets up routes over the persisted recipes.
func NewRecipeRouter(timeout time.Duration, group *gin.RouterGroup, repo repository.Repository, index cache.WatchableIndex, drafts cache.DraftStore) {
	rg := group.Group("")
	rg.Use(middleware.RequestTimeout(timeout))

	rc := controller.NewRecipeController(repo, index, drafts)

	rg.GET("recipes", rc.AllRecipes)
	rg.POST("recipe", rc.CreateRecipe)
	rg.GET("recipe/:name", rc.GetRecipe)
	rg.GET("recipe/:name/raw", rc.GetRawRecipe)
	rg.PUT("recipe/:name", rc.SaveRecipe)
	rg.DELETE("recipe/:name", rc.DeleteRecipe)
	rg.POST("recipe/:name/export", rc.ExportRecipe)
	rg.POST("recipes/import", rc.ImportRecipe)
	rg.POST("recipes/seed", rc.SeedRecipes)
}

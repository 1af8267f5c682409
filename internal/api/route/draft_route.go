package route

import (
	"time"

	"github.com/bassista/go_recipes/internal/api/controller"
	"github.com/bassista/go_recipes/internal/api/middleware"
	"github.com/bassista/go_recipes/internal/cache"
	"github.com/gin-gonic/gin"
)

// NewDraftRouter sets up routes for editing working copies.
func NewDraftRouter(timeout time.Duration, group *gin.RouterGroup, drafts cache.DraftStore, index cache.NameIndex) {
	rg := group.Group("draft/:name")
	rg.Use(middleware.RequestTimeout(timeout))

	dc := controller.NewDraftController(drafts, index)

	rg.POST("", dc.OpenDraft)
	rg.GET("", dc.GetDraft)
	rg.DELETE("", dc.DiscardDraft)
	rg.POST("save", dc.SaveDraft)
	rg.POST("section", dc.AddSection)
	rg.DELETE("section/:id", dc.RemoveSection)
	rg.POST("section/:id/ingredient", dc.AddIngredient)
	rg.DELETE("section/:id/ingredient/:index", dc.RemoveIngredient)
	rg.PUT("section/:id/tips", dc.SetTips)
}

package controller

import (
	"net/http"

	"github.com/bassista/go_recipes/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse is the subset of settings a recipe editor needs.
type ConfigurationResponse struct {
	ConfirmWindowMs int64  `json:"confirmWindowMs"`
	ExportDir       string `json:"exportDir"`
	Watching        bool   `json:"watching"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(cfg *config.Config) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
	}
}

// GetConfiguration returns the editor settings for the frontend.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigurationResponse{
		ConfirmWindowMs: cc.config.Draft.ConfirmWindow.Milliseconds(),
		ExportDir:       cc.config.Data.ExportDir,
		Watching:        cc.config.Data.Watch,
	})
}

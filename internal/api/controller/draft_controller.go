package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/logger"
	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DraftResponse is a working copy together with its unsaved-changes flag.
type DraftResponse struct {
	Recipe recipe.Recipe `json:"recipe"`
	Dirty  bool          `json:"dirty"`
}

// AddSectionRequest is the body of POST /draft/:name/section.
type AddSectionRequest struct {
	Title string `json:"title" validate:"required"`
}

// AddIngredientRequest is the body of POST /draft/:name/section/:id/ingredient.
type AddIngredientRequest struct {
	Name   string `json:"name" validate:"required"`
	Amount string `json:"amount"`
}

// SetTipsRequest is the body of PUT /draft/:name/section/:id/tips.
type SetTipsRequest struct {
	Tips string `json:"tips"`
}

// DraftController handles edits to in-memory working copies.
type DraftController struct {
	drafts    cache.DraftStore
	index     cache.NameIndex
	validator *validator.Validate
}

// NewDraftController creates a new DraftController.
func NewDraftController(drafts cache.DraftStore, index cache.NameIndex) *DraftController {
	return &DraftController{
		drafts:    drafts,
		index:     index,
		validator: validator.New(),
	}
}

// OpenDraft handles POST /draft/:name - opens (or resumes) a working copy.
func (dc *DraftController) OpenDraft(c *gin.Context) {
	name := c.Param("name")
	logger.WithComponent("draft-controller").Debugf("POST /draft/%s handler called", name)

	r, err := dc.drafts.Open(c.Request.Context(), name)
	if err != nil {
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to open draft")
		return
	}
	c.JSON(http.StatusOK, DraftResponse{Recipe: r, Dirty: dc.drafts.IsDirty(name)})
}

// GetDraft handles GET /draft/:name.
func (dc *DraftController) GetDraft(c *gin.Context) {
	dc.respondSnapshot(c, http.StatusOK, c.Param("name"))
}

// AddSection handles POST /draft/:name/section.
func (dc *DraftController) AddSection(c *gin.Context) {
	name := c.Param("name")
	logger.WithComponent("draft-controller").Debugf("POST /draft/%s/section handler called", name)

	var req AddSectionRequest
	if !dc.bind(c, &req) {
		return
	}
	sec, err := dc.drafts.AddSection(name, req.Title)
	if err != nil {
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to add section")
		return
	}
	c.JSON(http.StatusCreated, sec)
}

// RemoveSection handles DELETE /draft/:name/section/:id. The first call
// answers 202 and must be repeated within the confirmation window.
func (dc *DraftController) RemoveSection(c *gin.Context) {
	name, id := c.Param("name"), c.Param("id")
	logger.WithComponent("draft-controller").Debugf("DELETE /draft/%s/section/%s handler called", name, id)

	if err := dc.drafts.RemoveSection(name, id); err != nil {
		if errors.Is(err, cache.ErrConfirmationRequired) {
			c.JSON(http.StatusAccepted, gin.H{"message": "repeat the request to confirm removal"})
			return
		}
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to remove section")
		return
	}
	dc.respondSnapshot(c, http.StatusOK, name)
}

// AddIngredient handles POST /draft/:name/section/:id/ingredient.
func (dc *DraftController) AddIngredient(c *gin.Context) {
	name, id := c.Param("name"), c.Param("id")
	logger.WithComponent("draft-controller").Debugf("POST /draft/%s/section/%s/ingredient handler called", name, id)

	var req AddIngredientRequest
	if !dc.bind(c, &req) {
		return
	}
	if err := dc.drafts.AddIngredient(name, id, req.Name, req.Amount); err != nil {
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to add ingredient")
		return
	}
	dc.respondSnapshot(c, http.StatusCreated, name)
}

// RemoveIngredient handles DELETE /draft/:name/section/:id/ingredient/:index,
// confirmed the same way as RemoveSection.
func (dc *DraftController) RemoveIngredient(c *gin.Context) {
	name, id := c.Param("name"), c.Param("id")
	logger.WithComponent("draft-controller").Debugf("DELETE /draft/%s/section/%s/ingredient/%s handler called", name, id, c.Param("index"))

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient index must be a number"})
		return
	}
	if err := dc.drafts.RemoveIngredient(name, id, index); err != nil {
		if errors.Is(err, cache.ErrConfirmationRequired) {
			c.JSON(http.StatusAccepted, gin.H{"message": "repeat the request to confirm removal"})
			return
		}
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to remove ingredient")
		return
	}
	dc.respondSnapshot(c, http.StatusOK, name)
}

// SetTips handles PUT /draft/:name/section/:id/tips. Empty tips clear them.
func (dc *DraftController) SetTips(c *gin.Context) {
	name, id := c.Param("name"), c.Param("id")
	logger.WithComponent("draft-controller").Debugf("PUT /draft/%s/section/%s/tips handler called", name, id)

	var req SetTipsRequest
	if !dc.bind(c, &req) {
		return
	}
	if err := dc.drafts.SetTips(name, id, req.Tips); err != nil {
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to set tips")
		return
	}
	dc.respondSnapshot(c, http.StatusOK, name)
}

// SaveDraft handles POST /draft/:name/save - writes the working copy to the store.
func (dc *DraftController) SaveDraft(c *gin.Context) {
	name := c.Param("name")
	logger.WithComponent("draft-controller").Debugf("POST /draft/%s/save handler called", name)

	if err := dc.drafts.Commit(c.Request.Context(), name); err != nil {
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to save draft")
		return
	}
	dc.index.Add(name)
	dc.respondSnapshot(c, http.StatusOK, name)
}

// DiscardDraft handles DELETE /draft/:name - drops unsaved edits.
func (dc *DraftController) DiscardDraft(c *gin.Context) {
	name := c.Param("name")
	logger.WithComponent("draft-controller").Debugf("DELETE /draft/%s handler called", name)

	if err := dc.drafts.Discard(name); err != nil {
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to discard draft")
		return
	}
	c.Status(http.StatusNoContent)
}

func (dc *DraftController) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return false
	}
	if err := dc.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (dc *DraftController) respondSnapshot(c *gin.Context, status int, name string) {
	r, err := dc.drafts.Snapshot(name)
	if err != nil {
		respondError(c, logger.WithComponent("draft-controller"), err, "failed to read draft")
		return
	}
	c.JSON(status, DraftResponse{Recipe: r, Dirty: dc.drafts.IsDirty(name)})
}

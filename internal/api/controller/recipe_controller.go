package controller

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/logger"
	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/bassista/go_recipes/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// maxImportSize bounds an uploaded recipe document.
const maxImportSize = 1 << 20

// CreateRecipeRequest is the body of POST /recipe.
type CreateRecipeRequest struct {
	Name string `json:"name" validate:"required"`
}

// SaveRecipeRequest is the body of PUT /recipe/:name.
type SaveRecipeRequest struct {
	Sections []recipe.Section `json:"sections"`
}

// ImportResponse reports where an uploaded document was stored.
type ImportResponse struct {
	Name     string `json:"name"`
	Replaced bool   `json:"replaced"`
}

// RecipeController handles recipe-related HTTP endpoints.
type RecipeController struct {
	repo      repository.Repository
	index     cache.WatchableIndex
	drafts    cache.DraftStore
	validator *validator.Validate
}

// NewRecipeController creates a new RecipeController.
func NewRecipeController(repo repository.Repository, index cache.WatchableIndex, drafts cache.DraftStore) *RecipeController {
	return &RecipeController{
		repo:      repo,
		index:     index,
		drafts:    drafts,
		validator: validator.New(),
	}
}

func (rc *RecipeController) log() *logrus.Entry {
	return logger.WithComponent("recipe-controller")
}

// AllRecipes handles GET /recipes - returns the sorted recipe names.
func (rc *RecipeController) AllRecipes(c *gin.Context) {
	rc.log().Debugf("GET /recipes handler called")
	c.JSON(http.StatusOK, rc.index.Names())
}

// GetRecipe handles GET /recipe/:name - returns the decoded recipe.
func (rc *RecipeController) GetRecipe(c *gin.Context) {
	name := c.Param("name")
	rc.log().Debugf("GET /recipe/%s handler called", name)

	r, err := rc.repo.Load(c.Request.Context(), name)
	if err != nil {
		respondError(c, rc.log(), err, "failed to read recipe")
		return
	}
	c.JSON(http.StatusOK, r)
}

// GetRawRecipe handles GET /recipe/:name/raw - returns the stored text as is.
func (rc *RecipeController) GetRawRecipe(c *gin.Context) {
	name := c.Param("name")
	rc.log().Debugf("GET /recipe/%s/raw handler called", name)

	text, err := rc.repo.Read(c.Request.Context(), name)
	if err != nil {
		respondError(c, rc.log(), err, "failed to read recipe")
		return
	}
	c.String(http.StatusOK, text)
}

// CreateRecipe handles POST /recipe - creates an empty recipe.
func (rc *RecipeController) CreateRecipe(c *gin.Context) {
	rc.log().Debugf("POST /recipe handler called")

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := rc.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe name is required"})
		return
	}
	if rc.index.Contains(req.Name) {
		rc.log().Debugf("create recipe %s: already listed", req.Name)
		c.JSON(http.StatusConflict, gin.H{"error": "recipe with this name already exists"})
		return
	}

	if err := rc.repo.Create(c.Request.Context(), req.Name); err != nil {
		respondError(c, rc.log(), err, "failed to create recipe")
		return
	}
	rc.index.Add(req.Name)
	rc.log().Debugf("recipe %s created successfully", req.Name)
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

// DeleteRecipe handles DELETE /recipe/:name - removes the file, its index
// entry and any open draft, then returns the remaining names.
func (rc *RecipeController) DeleteRecipe(c *gin.Context) {
	name := c.Param("name")
	rc.log().Debugf("DELETE /recipe/%s handler called", name)

	if err := rc.repo.Delete(c.Request.Context(), name); err != nil {
		respondError(c, rc.log(), err, "failed to delete recipe")
		return
	}
	rc.index.Remove(name)
	if err := rc.drafts.Discard(name); err == nil {
		rc.log().Debugf("open draft of %s discarded", name)
	}
	c.JSON(http.StatusOK, rc.index.Names())
}

// SaveRecipe handles PUT /recipe/:name - replaces the recipe content.
func (rc *RecipeController) SaveRecipe(c *gin.Context) {
	name := c.Param("name")
	rc.log().Debugf("PUT /recipe/%s handler called", name)

	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := recipe.Validate(req.Sections); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Sections == nil {
		req.Sections = []recipe.Section{}
	}
	recipe.EnsureIDs(req.Sections)

	if err := rc.repo.Save(c.Request.Context(), name, req.Sections); err != nil {
		respondError(c, rc.log(), err, "failed to save recipe")
		return
	}
	rc.index.Add(name)
	c.JSON(http.StatusOK, recipe.Recipe{Name: name, Sections: req.Sections})
}

// ExportRecipe handles POST /recipe/:name/export - copies the recipe to the export folder.
func (rc *RecipeController) ExportRecipe(c *gin.Context) {
	name := c.Param("name")
	rc.log().Debugf("POST /recipe/%s/export handler called", name)

	if err := rc.repo.Export(c.Request.Context(), name); err != nil {
		respondError(c, rc.log(), err, "failed to export recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s exported", repository.KeyFor(name))})
}

// ImportRecipe handles POST /recipes/import - stores an uploaded document
// (multipart field "file") verbatim.
func (rc *RecipeController) ImportRecipe(c *gin.Context) {
	rc.log().Debugf("POST /recipes/import handler called")

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	if header.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	name, err := rc.repo.Import(c.Request.Context(), repository.ReaderSource{Name: header.Filename, Data: data})
	if err != nil {
		respondError(c, rc.log(), err, "failed to import recipe")
		return
	}

	if !rc.index.Add(name) {
		rc.log().Infof("import replaced existing recipe %s", name)
		c.JSON(http.StatusOK, ImportResponse{Name: name, Replaced: true})
		return
	}
	c.JSON(http.StatusCreated, ImportResponse{Name: name})
}

// SeedRecipes handles POST /recipes/seed - copies the bundled templates into an empty store.
func (rc *RecipeController) SeedRecipes(c *gin.Context) {
	rc.log().Debugf("POST /recipes/seed handler called")
	ctx := c.Request.Context()

	count, err := rc.repo.SeedFromTemplates(ctx)
	if err != nil {
		respondError(c, rc.log(), err, "failed to seed recipes")
		return
	}
	if count > 0 {
		names, err := rc.repo.List(ctx)
		if err != nil {
			respondError(c, rc.log(), err, "failed to list recipes")
			return
		}
		rc.index.Replace(names)
	}
	c.JSON(http.StatusOK, gin.H{"seeded": count, "recipes": rc.index.Names()})
}

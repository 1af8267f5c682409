package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusFor maps store, draft and model errors to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cache.ErrConfirmationRequired):
		return http.StatusAccepted
	case errdefs.IsNotFound(err),
		errors.Is(err, cache.ErrDraftNotFound),
		errors.Is(err, recipe.ErrSectionNotFound),
		errors.Is(err, recipe.ErrIngredientNotFound):
		return http.StatusNotFound
	case errdefs.IsAlreadyExists(err):
		return http.StatusConflict
	case errdefs.IsInvalidArgument(err),
		errors.Is(err, recipe.ErrEmptyTitle),
		errors.Is(err, recipe.ErrEmptyIngredient):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Client errors carry the error text;
// server errors carry fallback and are logged.
func respondError(c *gin.Context, log *logrus.Entry, err error, fallback string) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		msg = fallback
	} else {
		log.Debugf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": msg})
}

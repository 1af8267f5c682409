package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"store not found", fmt.Errorf("read %q: %w", "x", errdefs.ErrNotFound), http.StatusNotFound},
		{"draft not found", fmt.Errorf("%w: x", cache.ErrDraftNotFound), http.StatusNotFound},
		{"section not found", recipe.ErrSectionNotFound, http.StatusNotFound},
		{"ingredient not found", recipe.ErrIngredientNotFound, http.StatusNotFound},
		{"already exists", fmt.Errorf("create: %w", errdefs.ErrAlreadyExists), http.StatusConflict},
		{"invalid name", fmt.Errorf("name: %w", errdefs.ErrInvalidArgument), http.StatusBadRequest},
		{"empty title", recipe.ErrEmptyTitle, http.StatusBadRequest},
		{"empty ingredient", recipe.ErrEmptyIngredient, http.StatusBadRequest},
		{"pending removal", cache.ErrConfirmationRequired, http.StatusAccepted},
		{"deadline", fmt.Errorf("save: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"io failure", fmt.Errorf("save: %w: %w", errdefs.ErrUnavailable, errors.New("disk full")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

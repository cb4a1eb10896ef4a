package services

import (
	"errors"
	"net/http"
	"testing"

	pkgErrors "github.com/kerimovok/go-pkg-utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceErrorTaxonomy(t *testing.T) {
	t.Run("validation errors carry a 400 status", func(t *testing.T) {
		files, _, _, _, _ := newTestEnv(t)
		err := files.ValidateUpload("", 10)
		require.Error(t, err)

		var appErr *pkgErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
		assert.True(t, IsValidation(err))
	})

	t.Run("not found carries a 404 status", func(t *testing.T) {
		var appErr *pkgErrors.Error
		require.True(t, errors.As(ErrNotFound, &appErr))
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
		assert.False(t, IsValidation(ErrNotFound))
	})

	t.Run("wrapped infrastructure errors are not validation", func(t *testing.T) {
		err := errors.New("disk on fire")
		assert.False(t, IsValidation(err))
	})
}

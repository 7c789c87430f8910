package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihirwe/stockroom/pkg/zerror"
)

func TestZError(t *testing.T) {
	base := zerror.NewConflict("CATEGORY_EXISTS", "category already exists")

	t.Run("Should expose status, code and message", func(t *testing.T) {
		assert.Equal(t, zerror.StatusConflict, base.Status())
		assert.Equal(t, "CATEGORY_EXISTS", base.Code())
		assert.Equal(t, "category already exists", base.Msg())
		assert.Nil(t, base.Parent())
	})

	t.Run("Should wrap and unwrap a parent error", func(t *testing.T) {
		parent := errors.New("duplicate key")
		wrapped := base.WrapParent(parent)

		require.NotNil(t, wrapped.Parent())
		assert.ErrorIs(t, &wrapped, parent)
		assert.Contains(t, wrapped.Error(), "duplicate key")
	})

	t.Run("Should be matchable through errors.As after fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("delete category: %w", base)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "CATEGORY_EXISTS", zErr.Code())
	})

	t.Run("Should replace message without mutating the original", func(t *testing.T) {
		changed := base.WithMsg("3 products use this category")

		assert.Equal(t, "3 products use this category", changed.Msg())
		assert.Equal(t, "category already exists", base.Msg())
	})
}

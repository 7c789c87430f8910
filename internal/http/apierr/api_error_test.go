package apierr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihirwe/stockroom/internal/apperr"
	"github.com/ihirwe/stockroom/internal/http/apierr"
	"github.com/ihirwe/stockroom/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map an application error to its status and code", func(t *testing.T) {
		res := apierr.New(apperr.CategoryInUseErr)

		assert.Equal(t, http.StatusConflict, res.StatusCode)
		assert.Equal(t, apperr.CategoryInUseCode, res.Code)
	})

	t.Run("Should map a store error to 502", func(t *testing.T) {
		res := apierr.New(apperr.StoreErr.WrapParent(errors.New("connection refused")))

		assert.Equal(t, http.StatusBadGateway, res.StatusCode)
		assert.Equal(t, apperr.StoreErrorCode, res.Code)
	})

	t.Run("Should carry field details for wrapped validation failures", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		type input struct {
			Name  string  `validate:"required"`
			Price float64 `validate:"gte=0"`
		}
		vErr := v.Validate(input{Price: -1})
		require.Error(t, vErr)

		res := apierr.New(apperr.ValidationErr.WrapParent(vErr))

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.Len(t, res.Details, 2)
		assert.Equal(t, "Name", res.Details[0].Field)
		assert.Equal(t, "field is required", res.Details[0].Message)
	})

	t.Run("Should fall back to 500 for unknown errors", func(t *testing.T) {
		res := apierr.New(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, apierr.InternalServerErr.Code, res.Code)
	})
}

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ihirwe/stockroom/internal/model"
)

func TestActionValidate(t *testing.T) {
	for _, action := range []model.Action{
		model.ActionAdded,
		model.ActionUpdated,
		model.ActionDeleted,
		model.ActionAdjusted,
	} {
		assert.NoError(t, action.Validate())
	}

	assert.Error(t, model.Action("archived").Validate())
	assert.Error(t, model.Action("").Validate())
}

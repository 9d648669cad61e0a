package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bramblecoop/bramble/types"
)

func TestPageNormalize(t *testing.T) {
	page := Page{}.Normalize()
	assert.Equal(t, Page{Page: 1, Limit: DefaultLimit, OrderBy: types.OrderByDesc}, page)
	assert.Equal(t, 0, page.Offset())

	page = Page{Page: 3, Limit: 5000, OrderBy: types.OrderByAsc}.Normalize()
	assert.Equal(t, MaxLimit, page.Limit)
	assert.Equal(t, types.OrderByAsc, page.OrderBy)
	assert.Equal(t, 2*MaxLimit, page.Offset())

	page = Page{Page: -2, Limit: 20, OrderBy: "sideways"}.Normalize()
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, types.OrderByDesc, page.OrderBy)
}

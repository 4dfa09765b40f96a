package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 0, 20, 3)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.Last)

	page = NewPage([]int{1}, 0, 2, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.Last)

	page = NewPage([]int{1}, 2, 2, 5)
	assert.True(t, page.Last)
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage([]int{}, 0, 20, 0)
	assert.Equal(t, 0, page.TotalPages)
	assert.True(t, page.Last)
}

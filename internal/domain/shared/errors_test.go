package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("same code with different message matches", func(t *testing.T) {
		err := NewDomainError("NOT_FOUND", "product 42 not found")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("wrapped error matches", func(t *testing.T) {
		err := fmt.Errorf("loading order: %w", NewDomainError("INVALID_STATE", "locked"))
		assert.True(t, errors.Is(err, ErrInvalidState))
	})

	t.Run("different code does not match", func(t *testing.T) {
		err := NewDomainError("ALREADY_EXISTS", "duplicate")
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	t.Run("plain error does not match", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrNotFound))
	})
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 21, 2, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.Page)

	empty := NewPaginated([]int{}, 0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 0, PageSize: 20}.Offset())
	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
}

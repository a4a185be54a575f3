package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("recipe %d not found", 7)))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrapped: %w", Conflict("taken"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestSentinelMatching(t *testing.T) {
	err := fmt.Errorf("delete rating: %w", PermissionDenied("not your rating"))

	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, NotFound("specific")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Recipe is already in favorites", Message(Conflict("Recipe is already in favorites")))
	assert.Equal(t, "boom", Message(errors.New("boom")))

	internal := Internal(errors.New("connection reset"), "failed to load recipe")
	assert.Equal(t, "failed to load recipe: connection reset", internal.Error())
	assert.True(t, errors.Is(internal, internal.Err))
}

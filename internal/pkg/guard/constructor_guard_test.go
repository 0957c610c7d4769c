package guard_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardedCommand struct {
	orderID int64
	guard   guard.ConstructorGuard
}

var errCommandNotConstructed = errors.New("guardedCommand must be created via newGuardedCommand")

func newGuardedCommand(orderID int64) (guardedCommand, error) {
	if orderID <= 0 {
		return guardedCommand{}, errors.New("order id must be positive")
	}
	return guardedCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c guardedCommand) Validate() error {
	return c.guard.Validate(errCommandNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	t.Run("constructor_sets_guard", func(t *testing.T) {
		cmd, err := newGuardedCommand(42)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(42), cmd.orderID)
	})

	t.Run("struct_literal_is_rejected", func(t *testing.T) {
		cmd := guardedCommand{orderID: 42}

		assert.Equal(t, errCommandNotConstructed, cmd.Validate())
	})

	t.Run("copies_keep_guard_state", func(t *testing.T) {
		cmd, err := newGuardedCommand(7)
		require.NoError(t, err)

		copied := cmd

		require.NoError(t, copied.Validate())
	})
}

package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	coded := Newf(TaskNotFound, "task not found at position %d", 3)
	wrapped := fmt.Errorf("toggling: %w", coded)

	got := From(wrapped)
	assert.Same(t, coded, got)
	assert.Equal(t, 1, got.ExitCode())

	plain := errors.New("boom")
	got = From(plain)
	assert.Equal(t, InternalError, got.Code)
	assert.Equal(t, "boom", got.Message)
	assert.Equal(t, 2, got.ExitCode())
	assert.ErrorIs(t, got, plain)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(StoreUnavailable, cause).WithDetails(map[string]any{"key": "deepsea_todos"})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, "deepsea_todos", err.Details["key"])
}

package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Wrapping(t *testing.T) {
	err := RosterMismatchf("rider %q not in roster %s", "77", "2024")
	wrapped := fmt.Errorf("extract: %w", err)

	assert.True(t, errors.Is(wrapped, ErrRosterMismatch))
	assert.False(t, errors.Is(wrapped, ErrSelectionMismatch))
	assert.Equal(t, CodeRosterMismatch, CodeOf(wrapped))
	assert.Equal(t, `ROSTER_MISMATCH: rider "77" not in roster 2024: rider not in roster`, err.Error())
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, "", CodeOf(errors.New("boom")))
	assert.Nil(t, WrapError(nil, "ignored"))
}

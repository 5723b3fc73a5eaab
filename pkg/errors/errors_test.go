package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeDatabaseError, "connection failed"),
			expected: "[DATABASE_ERROR] connection failed",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeLoadFailure, "cannot read run.mat", errors.New("truncated data")),
			expected: "[LOAD_FAILURE] cannot read run.mat: truncated data",
		},
		{
			name:     "formatted",
			err:      Wrapf(CodeStorageError, errors.New("denied"), "download %s", "k1"),
			expected: "[STORAGE_ERROR] download k1: denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeParseError, "parse failed", underlying)

	assert.Equal(t, underlying, err.Unwrap())
	assert.True(t, errors.Is(err, underlying))
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeDatabaseError, "error 1")
	err2 := New(CodeDatabaseError, "error 2")
	err3 := New(CodeStorageError, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Wrap(CodeLoadFailure, "x", nil))

	assert.True(t, IsLoadFailure(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.True(t, IsNotFound(New(CodeNotFound, "missing")))
	assert.True(t, IsDatabaseError(ErrDatabaseError))
	assert.True(t, IsStorageError(Wrap(CodeStorageError, "s", errors.New("e"))))
	assert.False(t, IsStorageError(nil))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, CodeExportError, GetErrorCode(fmt.Errorf("w: %w", ErrExportError)))
	assert.Equal(t, CodeUnknown, GetErrorCode(errors.New("plain")))
	assert.Equal(t, CodeUnknown, GetErrorCode(nil))
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "bad config", GetErrorMessage(New(CodeConfigError, "bad config")))
	assert.Equal(t, "plain", GetErrorMessage(errors.New("plain")))
	assert.Equal(t, "", GetErrorMessage(nil))
}

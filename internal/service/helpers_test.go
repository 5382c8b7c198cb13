package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"points-board-api/internal/response"
)

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }

func requireAppErrorCode(t *testing.T, err error, code string) *response.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

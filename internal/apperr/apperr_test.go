package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCode(t *testing.T) {
	err := New(NotFoundCode, "cart does not exist")
	require.Equal(t, NotFoundCode, GetCode(err))
	require.Equal(t, "cart does not exist", err.Error())

	// 包在其他錯誤裡也要能取出錯誤碼
	wrapped := fmt.Errorf("complete purchase: %w", err)
	require.Equal(t, NotFoundCode, GetCode(wrapped))

	require.Equal(t, InternalCode, GetCode(errors.New("boom")))
	require.Equal(t, InternalCode, GetCode(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(InternalCode, "error retrieving the cart", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "error retrieving the cart")
	require.Contains(t, err.Error(), "connection refused")
}

func TestNewDefaultsMessage(t *testing.T) {
	err := New(ConflictCode, "")
	require.Equal(t, ErrStrMap[ConflictCode], err.Message)
	require.True(t, IsCode(err, ConflictCode))
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRemoteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"wallet rejection", errors.New("user rejected transaction"), KindUserCancelled},
		{"wallet denial", errors.New("MetaMask Tx Signature: User denied transaction signature."), KindUserCancelled},
		{"contract revert", errors.New("execution reverted: Data already verified"), KindBenignRace},
		{"sentinel", fmt.Errorf("submit: %w", ErrAlreadyVerified), KindBenignRace},
		{"network", errors.New("dial tcp: connection refused"), KindRemoteCallFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRemoteError("op", tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ClassifyRemoteError("op", nil))
	})

	t.Run("already classified is kept", func(t *testing.T) {
		pre := Precondition("create", ErrMissingField)
		got := ClassifyRemoteError("other", fmt.Errorf("wrapped: %w", pre))
		assert.Equal(t, KindPreconditionUnmet, got.Kind)
		assert.Equal(t, "create", got.Op)
	})
}

func TestRootMessage(t *testing.T) {
	err := fmt.Errorf("encrypt: %w", fmt.Errorf("relayer: %w", errors.New("engine busy")))
	assert.Equal(t, "engine busy", RootMessage(err))
	assert.Equal(t, "Unknown error", RootMessage(nil))
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

func TestRevealWeight(t *testing.T) {
	ctx := context.Background()

	t.Run("reveals, verifies and reconciles", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)
		ids := seedProposals(h.ledger, 1)
		id := ids[0]
		h.engine.On("RequestDecryption", mock.Anything, []models.Handle{handleFor(id)}, testContract).
			Return(decryptionOf(id, 42), nil)

		result, err := h.reveal.Run(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, result.Weight)
		assert.Equal(t, uint64(42), *result.Weight)
		assert.False(t, result.AlreadyVerified)

		assert.Equal(t, 1, h.ledger.submitCount())
		assert.Equal(t, 1, h.ledger.listCount())

		events := h.sink.published()
		require.Len(t, events, 2)
		assert.Equal(t, StageVerifying, events[0].Stage)
		assert.Equal(t, "Verifying decryption on-chain...", events[0].Message)
		assert.Equal(t, "Data decrypted and verified successfully!", events[1].Message)

		snap := h.session.Snapshot()
		p, ok := snap.Proposal(id)
		require.True(t, ok)
		assert.True(t, p.IsVerified)
		assert.Equal(t, uint64(42), p.VerifiedWeight)
		assert.Equal(t, "Decrypted vote data: 42", snap.History[0].Text)
	})

	t.Run("already verified is a no-op success", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)
		id := seedProposals(h.ledger, 1)[0]
		h.ledger.setVerified(id, 17)
		h.ledger.signerErr = errors.New("writer must not be requested")

		result, err := h.reveal.Run(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, result.Weight)
		assert.Equal(t, uint64(17), *result.Weight)
		assert.True(t, result.AlreadyVerified)

		assert.Equal(t, 0, h.ledger.submitCount())
		h.engine.AssertNotCalled(t, "RequestDecryption", mock.Anything, mock.Anything, mock.Anything)
		last := h.sink.last()
		assert.Equal(t, models.TxPhaseSuccess, last.Phase)
		assert.Equal(t, "Data already verified on-chain", last.Message)
	})

	t.Run("concurrent verification by someone else is benign", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)
		id := seedProposals(h.ledger, 1)[0]
		h.engine.On("RequestDecryption", mock.Anything, mock.Anything, mock.Anything).Return(decryptionOf(id, 42), nil)
		h.ledger.beforeSubmit = func() { h.ledger.setVerified(id, 42) }

		result, err := h.reveal.Run(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, result.Weight)
		assert.True(t, result.AlreadyVerified)

		last := h.sink.last()
		assert.Equal(t, models.TxPhaseSuccess, last.Phase)
		assert.Equal(t, "Data is already verified on-chain", last.Message)
		assert.Equal(t, 0, h.sink.count(models.TxPhaseError))
		assert.Equal(t, 1, h.ledger.listCount())
	})

	t.Run("concurrent reveals submit exactly once", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)
		id := seedProposals(h.ledger, 1)[0]
		h.engine.On("RequestDecryption", mock.Anything, mock.Anything, mock.Anything).Return(decryptionOf(id, 42), nil)

		const callers = 4
		results := make([]*RevealResult, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				r, err := h.reveal.Run(ctx, id)
				assert.NoError(t, err)
				results[i] = r
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, h.ledger.submitCount())
		h.engine.AssertNumberOfCalls(t, "RequestDecryption", 1)

		shortCircuited := 0
		for _, r := range results {
			require.NotNil(t, r)
			require.NotNil(t, r.Weight)
			assert.Equal(t, uint64(42), *r.Weight)
			if r.AlreadyVerified {
				shortCircuited++
			}
		}
		assert.Equal(t, callers-1, shortCircuited)
	})

	t.Run("decryption failure is reported", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)
		id := seedProposals(h.ledger, 1)[0]
		h.engine.On("RequestDecryption", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("relayer timeout"))

		_, err := h.reveal.Run(ctx, id)
		require.Error(t, err)
		assert.Equal(t, domain.KindRemoteCallFailed, domain.KindOf(err))
		assert.Equal(t, "Decryption failed: relayer timeout", h.sink.last().Message)
		assert.Equal(t, 0, h.ledger.submitCount())
	})

	t.Run("missing clear value for the handle", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)
		id := seedProposals(h.ledger, 1)[0]
		h.engine.On("RequestDecryption", mock.Anything, mock.Anything, mock.Anything).Return(decryptionOf("other", 1), nil)

		_, err := h.reveal.Run(ctx, id)
		require.Error(t, err)
		assert.Equal(t, 0, h.ledger.submitCount())
		assert.Equal(t, models.TxPhaseError, h.sink.last().Phase)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)

		_, err := h.reveal.Run(ctx, "vote-404")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "Decryption failed: not found", h.sink.last().Message)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("available", func(t *testing.T) {
		h := newHarness(t)
		ok, err := h.check.Run(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Contract is available and responsive!", h.sink.last().Message)
		assert.Equal(t, "Checked contract availability: Available", h.session.Snapshot().History[0].Text)
	})

	t.Run("unavailable", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.availErr = errors.New("no contract code at given address")
		ok, err := h.check.Run(ctx)
		assert.Error(t, err)
		assert.False(t, ok)
		assert.Equal(t, "Contract call failed", h.sink.last().Message)
		assert.Empty(t, h.session.Snapshot().History)
	})
}

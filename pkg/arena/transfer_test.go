package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferAbsorbScratchToScratch(t *testing.T) {
	producer, err := CreateScratch(256, 8)
	require.NoError(t, err)

	payload := []byte("payload bytes for transfer")
	Transfer[*Scratch](producer, payload, 8)

	consumer, err := CreateScratch(256, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&consumer)) })

	dest, err := Absorb[*Scratch, *Scratch](consumer, producer, func() error {
		return DestroyScratch(&producer)
	})
	require.NoError(t, err)
	require.False(t, dest.IsNull())
	assert.Equal(t, payload, dest.Bytes(len(payload)))
	assert.Nil(t, producer)
}

func TestAbsorbRejectsNonEnvelope(t *testing.T) {
	consumer, err := CreateScratch(64, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&consumer)) })

	notAnEnvelope, err := CreateScratch(64, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&notAnEnvelope)) })

	dest, err := Absorb[*Scratch, *Scratch](consumer, notAnEnvelope, func() error { return nil })
	require.NoError(t, err)
	assert.True(t, dest.IsNull())
}

func TestTransferAcrossStackAndScratch(t *testing.T) {
	producer, err := CreateStack(256, 8, StrategyEager)
	require.NoError(t, err)

	payload := []byte("cross-kind transfer")
	Transfer[*Stack](producer, payload, 8)

	consumer, err := CreateScratch(256, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&consumer)) })

	dest, err := Absorb[*Scratch, *Stack](consumer, producer, func() error {
		return DestroyStack(&producer)
	})
	require.NoError(t, err)
	require.False(t, dest.IsNull())
	assert.Equal(t, payload, dest.Bytes(len(payload)))
}

package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	queuev1alpha1 "tekqueue/pkg/apis/queue/v1alpha1"
)

func TestLimitReaderReadsResource(t *testing.T) {
	s, _ := newFakeStore(globalLimit(7))
	reader := NewLimitReader(s, 10)

	assert.Equal(t, 7, reader.Current(context.Background()))
}

func TestLimitReaderDefaultsWhenMissing(t *testing.T) {
	s, _ := newFakeStore()
	reader := NewLimitReader(s, 10)

	assert.Equal(t, 10, reader.Current(context.Background()))
}

func TestLimitReaderKeepsLastKnownAfterDeletion(t *testing.T) {
	limit := globalLimit(3)
	s, c := newFakeStore(limit)
	reader := NewLimitReader(s, 10)
	ctx := context.Background()

	require.Equal(t, 3, reader.Current(ctx))

	require.NoError(t, c.Delete(ctx, limit))

	// The resource is gone; the last successfully read value stays in
	// effect rather than snapping back to the default.
	assert.Equal(t, 3, reader.Current(ctx))
}

func TestLimitReaderTracksUpdates(t *testing.T) {
	limit := globalLimit(3)
	s, c := newFakeStore(limit)
	reader := NewLimitReader(s, 10)
	ctx := context.Background()

	require.Equal(t, 3, reader.Current(ctx))

	fetched := &queuev1alpha1.GlobalLimit{}
	require.NoError(t, c.Get(ctx, clientKey(queuev1alpha1.GlobalLimitName), fetched))
	fetched.Spec.MaxPipelines = 5
	require.NoError(t, c.Update(ctx, fetched))

	assert.Equal(t, 5, reader.Current(ctx))
}

func TestLimitReaderRejectsInvalidValue(t *testing.T) {
	s, _ := newFakeStore(globalLimit(0))
	reader := NewLimitReader(s, 10)

	assert.Equal(t, 10, reader.Current(context.Background()))
}

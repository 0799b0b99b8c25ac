package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blkdmnd/visual-thesis/internal/llm/llmtest"
)

func TestStore_OpenGetClose(t *testing.T) {
	st, err := NewStore(newPipeline(t, llmtest.New("hi")), 4, nil)
	require.NoError(t, err)

	s := st.Open()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, _, err = s.Send(context.Background(), "hello")
	require.NoError(t, err)

	require.NoError(t, st.Close(s.ID))
	assert.Empty(t, s.Transcript())

	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, st.Close(s.ID), ErrSessionNotFound)
}

func TestStore_EvictionResetsSession(t *testing.T) {
	st, err := NewStore(newPipeline(t, llmtest.New("hi")), 1, nil)
	require.NoError(t, err)

	first := st.Open()
	_, _, err = first.Send(context.Background(), "hello")
	require.NoError(t, err)

	second := st.Open()
	assert.NotEqual(t, first.ID, second.ID)
	assert.Empty(t, first.Transcript())

	_, err = st.Get(first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_DefaultSize(t *testing.T) {
	st, err := NewStore(newPipeline(t, llmtest.New()), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
}

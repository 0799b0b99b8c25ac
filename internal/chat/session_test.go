package chat

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blkdmnd/visual-thesis/internal/llm/llmtest"
	"github.com/blkdmnd/visual-thesis/internal/observability"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

func TestSession_SendAppendsBothTurns(t *testing.T) {
	s := NewSession("s1", newPipeline(t, llmtest.New("first", "second")), nil)

	reply, transcript, err := s.Send(context.Background(), "one")
	require.NoError(t, err)
	assert.Equal(t, "first", reply)
	assert.Len(t, transcript, 2)

	_, transcript, err = s.Send(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, []types.TranscriptEntry{
		{Role: types.RoleUser, Text: "one"},
		{Role: types.RoleAssistant, Text: "first"},
		{Role: types.RoleUser, Text: "two"},
		{Role: types.RoleAssistant, Text: "second"},
	}, transcript)
}

func TestSession_FailureAppendsApology(t *testing.T) {
	client := &llmtest.Client{}
	client.Push(llmtest.Response{Err: assert.AnError})
	s := NewSession("s1", newPipeline(t, client), nil)

	_, transcript, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, ErrorReply, transcript[1].Text)
}

func TestSession_OneTurnInFlight(t *testing.T) {
	client := llmtest.New("reply")
	client.Block = make(chan struct{})
	metrics := observability.MustNewMetrics(prometheus.NewRegistry())
	s := NewSession("s1", newPipeline(t, client), metrics)

	done := make(chan error, 1)
	go func() {
		_, _, err := s.Send(context.Background(), "first")
		done <- err
	}()

	require.Eventually(t, func() bool { return client.Calls() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, s.Typing())

	for i := 0; i < 3; i++ {
		_, _, err := s.Send(context.Background(), "second")
		assert.ErrorIs(t, err, ErrTurnInFlight)
	}

	close(client.Block)
	require.NoError(t, <-done)

	assert.False(t, s.Typing())
	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, 1, client.MaxInFlight)
	assert.Len(t, s.Transcript(), 2)
}

func TestSession_CancelledTurnIsWithdrawn(t *testing.T) {
	// A cancelled call returns before consuming the scripted reply.
	client := llmtest.New("answer")
	client.Block = make(chan struct{})
	s := NewSession("s1", newPipeline(t, client), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := s.Send(ctx, "first")
		done <- err
	}()

	require.Eventually(t, func() bool { return client.Calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, s.Typing())
	assert.Empty(t, s.Transcript())

	client.Block = nil
	_, transcript, err := s.Send(context.Background(), "second question")
	require.NoError(t, err)
	assert.Equal(t, []types.TranscriptEntry{
		{Role: types.RoleUser, Text: "second question"},
		{Role: types.RoleAssistant, Text: "answer"},
	}, transcript)
	require.Len(t, client.ChatRequests, 2)
	assert.Empty(t, client.ChatRequests[1].History)
}

func TestSession_TrimsText(t *testing.T) {
	client := llmtest.New("hi")
	s := NewSession("s1", newPipeline(t, client), nil)

	_, transcript, err := s.Send(context.Background(), "  hello there \n")
	require.NoError(t, err)
	assert.Equal(t, "hello there", transcript[0].Text)
	require.Len(t, client.ChatRequests, 1)
	assert.Equal(t, "hello there", client.ChatRequests[0].Message)
}

func TestSession_ResetDuringTurnDropsReply(t *testing.T) {
	client := llmtest.New("late")
	client.Block = make(chan struct{})
	s := NewSession("s1", newPipeline(t, client), nil)

	done := make(chan error, 1)
	go func() {
		_, _, err := s.Send(context.Background(), "hello")
		done <- err
	}()

	require.Eventually(t, func() bool { return client.Calls() == 1 }, time.Second, 5*time.Millisecond)
	s.Reset()
	close(client.Block)

	require.NoError(t, <-done)
	assert.Empty(t, s.Transcript())
}

func TestSession_BlankTextKeepsGuardFree(t *testing.T) {
	client := llmtest.New("ok")
	s := NewSession("s1", newPipeline(t, client), nil)

	_, _, err := s.Send(context.Background(), " ")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.False(t, s.Typing())
	assert.Equal(t, 0, client.Calls())
	assert.Empty(t, s.Transcript())
}

package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel_Queue(t *testing.T) {
	mock := NewMockModel("mock-model", "mock")
	mock.Queue("first", "second")

	resp, err := mock.Generate(context.Background(), Request{Prompt: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Text)

	resp, err = mock.Generate(context.Background(), Request{Prompt: "something else"})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Text)

	// Drained queue falls back to the generic echo.
	resp, err = mock.Generate(context.Background(), Request{Prompt: "tail"})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: tail", resp.Text)
}

func TestMockModel_AddResponse(t *testing.T) {
	mock := NewMockModel("mock-model", "mock")
	mock.AddResponse("known prompt", "canned answer")

	resp, err := mock.Generate(context.Background(), Request{Prompt: "known prompt"})
	require.NoError(t, err)
	assert.Equal(t, "canned answer", resp.Text)
}

func TestMockModel_QueueBeatsCannedResponses(t *testing.T) {
	mock := NewMockModel("mock-model", "mock")
	mock.AddResponse("known prompt", "canned answer")
	mock.Queue("scripted")

	resp, err := mock.Generate(context.Background(), Request{Prompt: "known prompt"})
	require.NoError(t, err)
	assert.Equal(t, "scripted", resp.Text)
}

func TestMockModel_FailWith(t *testing.T) {
	mock := NewMockModel("mock-model", "mock")
	boom := errors.New("model unavailable")
	mock.FailWith(boom)
	mock.Queue("never served")

	_, err := mock.Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, boom)

	mock.FailWith(nil)
	resp, err := mock.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "never served", resp.Text)
}

func TestMockModel_RecordsRequests(t *testing.T) {
	mock := NewMockModel("mock-model", "mock")
	_, err := mock.Generate(context.Background(), Request{
		Instructions: "be brief",
		Prompt:       "hello",
	})
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "be brief", reqs[0].Instructions)
	assert.Equal(t, "hello", reqs[0].Prompt)
}

func TestMockModel_CancelledContext(t *testing.T) {
	mock := NewMockModel("mock-model", "mock")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{Prompt: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mock.Requests(), "cancelled calls are not recorded")
}

func TestMockModel_Info(t *testing.T) {
	info := NewMockModel("mock-model", "mock").Info()
	assert.Equal(t, "mock-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsVision)
}

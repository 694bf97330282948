package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-go/internal/config"
	"trip-planner-go/pkg/errs"
)

type stubClient struct {
	reply string
	err   error

	calls  int
	system string
	user   string
}

func (s *stubClient) Send(_ context.Context, systemInstruction, userText string) (string, error) {
	s.calls++
	s.system = systemInstruction
	s.user = userText
	return s.reply, s.err
}

func TestNewWithoutCredential(t *testing.T) {
	cfg := config.DefaultLLMConfig()
	cfg.APIKey = ""

	p, err := New(cfg)
	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
}

func TestNewWithCredential(t *testing.T) {
	cfg := config.DefaultLLMConfig()
	cfg.APIKey = "fake"

	p, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestRunSendsSystemInstructionAndPromptVerbatim(t *testing.T) {
	stub := &stubClient{reply: "Porto\nMood Harmony Score: 8/10"}
	p := NewWithClient(stub)

	out, err := p.Run(context.Background(), "  my prompt \n")
	require.NoError(t, err)

	assert.Equal(t, "Porto\nMood Harmony Score: 8/10", out)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, SystemInstruction, stub.system)
	assert.Equal(t, "  my prompt \n", stub.user)
	assert.True(t, strings.Contains(stub.system, "Mood Harmony Score: X/10"))
}

func TestRunEmptyResponse(t *testing.T) {
	p := NewWithClient(&stubClient{reply: ""})
	out, err := p.Run(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRunPropagatesRemoteError(t *testing.T) {
	remote := &errs.RemoteServiceError{Provider: "stub", Err: errors.New("503")}
	p := NewWithClient(&stubClient{err: remote})

	out, err := p.Run(context.Background(), "x")
	assert.Empty(t, out)
	require.Error(t, err)
	assert.True(t, errs.IsRemote(err))
	assert.Same(t, remote, err)
}

func TestUseAppendsStages(t *testing.T) {
	p := NewWithClient(&stubClient{reply: "draft"})
	p.Use(func(_ context.Context, st *State) error {
		s := *st.Response + " (reviewed)"
		st.Response = &s
		return nil
	})

	out, err := p.Run(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "draft (reviewed)", out)
}

func TestLaterStageErrorStopsRun(t *testing.T) {
	stub := &stubClient{reply: "draft"}
	ran := false
	p := NewWithClient(stub).Use(
		func(context.Context, *State) error { return errors.New("rejected") },
		func(context.Context, *State) error { ran = true; return nil },
	)

	_, err := p.Run(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
	assert.False(t, ran)
}

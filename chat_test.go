package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator is a scripted TextGenerator recording every request.
type fakeGenerator struct {
	reply    string
	err      error
	requests [][]Message
	systems  []string
}

func (g *fakeGenerator) Complete(ctx context.Context, system string, messages []Message) (*Completion, error) {
	g.requests = append(g.requests, messages)
	g.systems = append(g.systems, system)
	if g.err != nil {
		return nil, g.err
	}
	return &Completion{Text: g.reply, TokensUsed: 42, Cost: 0.001, Model: "fake-model"}, nil
}

func (g *fakeGenerator) ModelName() string { return "fake-model" }

func TestChatAppendsHistoryOnSuccess(t *testing.T) {
	gen := &fakeGenerator{reply: "hi there"}
	p := NewChatPipeline(gen, nil)

	result := p.Chat(context.Background(), "hello")
	assert.Equal(t, "hi there", result.Response)
	assert.Equal(t, 42, result.TokensUsed)
	assert.Equal(t, "fake-model", result.Model)

	turns := p.History()
	require.Len(t, turns, 1)
	assert.Equal(t, "hello", turns[0].User)
	assert.Equal(t, "hi there", turns[0].Assistant)
}

func TestChatSendsFullHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	p := NewChatPipeline(gen, nil)

	p.Chat(context.Background(), "first")
	p.Chat(context.Background(), "second")

	require.Len(t, gen.requests, 2)
	// Second request carries the completed first turn plus the new message.
	require.Len(t, gen.requests[1], 3)
	assert.Equal(t, "first", gen.requests[1][0].Text)
	assert.Equal(t, RoleModel, gen.requests[1][1].Role)
	assert.Equal(t, "second", gen.requests[1][2].Text)
	assert.Equal(t, ChatSystemPrompt, gen.systems[1])
}

func TestChatFailureLeavesHistoryUntouched(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend down")}
	p := NewChatPipeline(gen, nil)

	result := p.Chat(context.Background(), "hello")
	assert.Contains(t, result.Response, "I apologize, but I encountered an error:")
	assert.Contains(t, result.Response, "backend down")
	assert.Equal(t, "fake-model", result.Model)
	assert.Zero(t, result.TokensUsed)

	assert.Empty(t, p.History())

	// A later successful turn starts from a clean history.
	gen.err = nil
	gen.reply = "recovered"
	p.Chat(context.Background(), "again")
	require.Len(t, p.History(), 1)
	assert.Equal(t, "again", p.History()[0].User)
}

func TestClearHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	p := NewChatPipeline(gen, nil)

	p.Chat(context.Background(), "hello")
	require.NotEmpty(t, p.History())

	p.ClearHistory()
	assert.Empty(t, p.History())
}

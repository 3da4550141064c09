package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ChatPipeline is the direct response strategy: a linear alternating
// history plus one generation call, no retrieval. It is not safe for
// concurrent use; the conversation manager serializes access per session.
type ChatPipeline struct {
	gen     TextGenerator
	logger  *zap.Logger
	history []Message
}

// NewChatPipeline creates an empty-history pipeline.
func NewChatPipeline(gen TextGenerator, logger *zap.Logger) *ChatPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatPipeline{gen: gen, logger: logger}
}

// Chat sends the system prompt, full history and the new message in one
// request. Both sides of the turn are appended only on success, so a
// transient backend error never poisons the history.
func (p *ChatPipeline) Chat(ctx context.Context, message string) PipelineResult {
	messages := make([]Message, 0, len(p.history)+1)
	messages = append(messages, p.history...)
	messages = append(messages, Message{Role: RoleUser, Text: message})

	completion, err := p.gen.Complete(ctx, ChatSystemPrompt, messages)
	if err != nil {
		p.logger.Error("chat generation failed", zap.Error(err))
		return PipelineResult{
			Response: fmt.Sprintf("I apologize, but I encountered an error: %v", err),
			Model:    p.gen.ModelName(),
		}
	}

	p.history = append(p.history,
		Message{Role: RoleUser, Text: message},
		Message{Role: RoleModel, Text: completion.Text},
	)

	return PipelineResult{
		Response:   completion.Text,
		TokensUsed: completion.TokensUsed,
		Cost:       completion.Cost,
		Model:      completion.Model,
	}
}

// History pairs the stored messages into completed turns.
func (p *ChatPipeline) History() []ChatTurn {
	turns := make([]ChatTurn, 0, len(p.history)/2)
	for i := 0; i+1 < len(p.history); i += 2 {
		turns = append(turns, ChatTurn{
			User:      p.history[i].Text,
			Assistant: p.history[i+1].Text,
		})
	}
	return turns
}

// ClearHistory drops all stored turns.
func (p *ChatPipeline) ClearHistory() {
	p.history = nil
}

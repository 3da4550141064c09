package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ConversationManager owns per-user session state and routes each message to
// the direct or retrieval pipeline based on classified intent (or an explicit
// override). Sessions are created lazily on first contact and removed only by
// an explicit inactivity sweep.
type ConversationManager struct {
	classifier *IntentClassifier
	rag        *RAGPipeline
	store      *KnowledgeStore
	gen        TextGenerator
	logger     *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewConversationManager wires the manager to its pipelines and store.
func NewConversationManager(classifier *IntentClassifier, rag *RAGPipeline, store *KnowledgeStore, gen TextGenerator, logger *zap.Logger) *ConversationManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationManager{
		classifier: classifier,
		rag:        rag,
		store:      store,
		gen:        gen,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// touch returns the session for userID, creating it on first contact, and
// refreshes its activity timestamp.
func (m *ConversationManager) touch(userID string) *Session {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{
			UserID:    userID,
			CreatedAt: now,
			chat:      NewChatPipeline(m.gen, m.logger),
		}
		m.sessions[userID] = sess
	}
	sess.LastActivity = now
	return sess
}

// ProcessMessage classifies the message, dispatches it to a pipeline and
// returns the merged result record. Any failure past the session touch is
// converted into an error-shaped result; it never propagates.
func (m *ConversationManager) ProcessMessage(ctx context.Context, message, userID string, useRAG *bool) MessageResult {
	start := time.Now()
	sess := m.touch(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Committed before dispatch so failed messages still count.
	sess.MessageCount++
	messageCount := sess.MessageCount

	intent, confidence := m.classifier.Classify(message)
	metadata := m.classifier.Metadata(intent)

	wantRAG := metadata.UseRAG
	if useRAG != nil {
		wantRAG = *useRAG
	}

	pipeline, responseType, err := m.dispatch(ctx, sess, message, userID, wantRAG)
	if err != nil {
		m.logger.Error("message processing failed",
			zap.String("user_id", userID), zap.Error(err))
		return MessageResult{
			Response:     fmt.Sprintf("I apologize, but I encountered an error: %v", err),
			Intent:       string(IntentGeneral),
			Confidence:   0,
			ResponseType: ResponseTypeError,
			UserID:       userID,
			MessageCount: messageCount,
			LatencyMs:    float64(time.Since(start).Microseconds()) / 1000,
		}
	}

	return MessageResult{
		Response:          pipeline.Response,
		Intent:            string(intent),
		Confidence:        confidence,
		IntentDescription: metadata.Description,
		ResponseStyle:     metadata.ResponseStyle,
		ResponseType:      responseType,
		UserID:            userID,
		MessageCount:      messageCount,
		LatencyMs:         float64(time.Since(start).Microseconds()) / 1000,
		TokensUsed:        pipeline.TokensUsed,
		Cost:              pipeline.Cost,
		Model:             pipeline.Model,
		SourcesUsed:       pipeline.SourcesUsed,
		ContextLength:     pipeline.ContextLength,
	}
}

// dispatch runs the selected pipeline. It errors only when the required
// pipeline is unavailable; backend failures are already absorbed into the
// pipeline result.
func (m *ConversationManager) dispatch(ctx context.Context, sess *Session, message, userID string, wantRAG bool) (PipelineResult, string, error) {
	if wantRAG {
		if m.rag == nil {
			return PipelineResult{}, "", fmt.Errorf("retrieval pipeline is not configured")
		}
		return m.rag.Answer(ctx, message, userID), ResponseTypeRAG, nil
	}
	if sess.chat == nil {
		return PipelineResult{}, "", fmt.Errorf("chat pipeline is not configured")
	}
	return sess.chat.Chat(ctx, message), ResponseTypeChat, nil
}

// IngestDocuments adds segments to the knowledge base.
func (m *ConversationManager) IngestDocuments(ctx context.Context, segments []Segment) IngestResult {
	return m.store.Ingest(ctx, segments)
}

// KnowledgeBaseStats reports the current index statistics.
func (m *ConversationManager) KnowledgeBaseStats() KnowledgeStats {
	return m.store.Stats()
}

// ClearKnowledgeBase wipes the index, escalating to the filesystem-level
// rebuild when the staged strategies leave documents behind.
func (m *ConversationManager) ClearKnowledgeBase(ctx context.Context) ClearResult {
	m.store.Clear(ctx)

	if m.store.Stats().TotalDocuments > 0 {
		m.logger.Warn("staged clear left documents behind, rebuilding storage")
		if err := m.store.ClearManual(); err != nil {
			return ClearResult{Success: false, Error: err.Error()}
		}
	}
	return ClearResult{Success: true, Message: "Knowledge base cleared successfully"}
}

// SessionHistory returns the completed turns for a user, empty when the
// user has no session.
func (m *ConversationManager) SessionHistory(userID string) []ChatTurn {
	m.mu.RLock()
	sess, ok := m.sessions[userID]
	m.mu.RUnlock()
	if !ok {
		return []ChatTurn{}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.chat.History()
}

// ClearSession resets a session's history and message count but keeps the
// session itself (and its creation time). Returns false for unknown users.
// Both resets happen under the session mutex, so a clear never interleaves
// with an in-flight message for the same user.
func (m *ConversationManager) ClearSession(userID string) bool {
	m.mu.RLock()
	sess, ok := m.sessions[userID]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.MessageCount = 0
	sess.chat.ClearHistory()
	return true
}

// SessionStats returns a read-only snapshot for a user; ok is false when
// the user has no session.
func (m *ConversationManager) SessionStats(userID string) (SessionStats, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[userID]
	if !ok {
		m.mu.RUnlock()
		return SessionStats{}, false
	}
	stats := SessionStats{
		UserID:              userID,
		CreatedAt:           unixSeconds(sess.CreatedAt),
		LastActivity:        unixSeconds(sess.LastActivity),
		ActiveConversations: len(m.sessions),
	}
	m.mu.RUnlock()

	sess.mu.Lock()
	stats.MessageCount = sess.MessageCount
	sess.mu.Unlock()
	return stats, true
}

// ActiveSessions returns the number of live sessions.
func (m *ConversationManager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictInactive removes every session whose last activity predates the
// inactivity threshold, returning the eviction count. This is a
// caller-driven sweep, not a timer.
func (m *ConversationManager) EvictInactive(maxInactiveHours int) int {
	threshold := time.Now().Add(-time.Duration(maxInactiveHours) * time.Hour)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for userID, sess := range m.sessions {
		if sess.LastActivity.Before(threshold) {
			delete(m.sessions, userID)
			evicted++
		}
	}
	return evicted
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

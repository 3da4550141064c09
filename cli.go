package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

const cliUserID = "cli"

// runInteractiveCLI starts an interactive command-line interface for testing
// the pipeline without an HTTP client. Every command goes through the same
// conversation manager the server uses.
func runInteractiveCLI(ctx context.Context, manager *ConversationManager, loader *DocumentLoader) {
	fmt.Println(WelcomeMsg)
	fmt.Println(HelpMsg)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n" + PromptStr)
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := strings.ToLower(parts[0])
		switch cmd {
		case "exit":
			return

		case "chat":
			if len(parts) < 2 {
				fmt.Println("Usage: chat <message>")
				continue
			}
			cliChat(ctx, manager, strings.Join(parts[1:], " "), nil)

		case "ask":
			if len(parts) < 2 {
				fmt.Println("Usage: ask <question>")
				continue
			}
			useRAG := true
			cliChat(ctx, manager, strings.Join(parts[1:], " "), &useRAG)

		case "ingest":
			cliIngest(ctx, manager, loader)

		case "search":
			if len(parts) < 2 {
				fmt.Println("Usage: search <query>")
				continue
			}
			cliSearch(ctx, manager, strings.Join(parts[1:], " "))

		case "stats":
			cliStats(manager)

		case "history":
			cliHistory(manager)

		case "clear":
			if manager.ClearSession(cliUserID) {
				fmt.Println("Conversation cleared.")
			} else {
				fmt.Println("No conversation to clear.")
			}

		case "wipe":
			result := manager.ClearKnowledgeBase(ctx)
			if result.Success {
				fmt.Println(result.Message)
			} else {
				fmt.Printf("Error: %s\n", result.Error)
			}

		default:
			fmt.Println(UnknownCmdMsg)
		}
	}
}

// cliChat sends a message through the manager, with useRAG forcing or
// suppressing retrieval when non-nil.
func cliChat(ctx context.Context, manager *ConversationManager, message string, useRAG *bool) {
	result := manager.ProcessMessage(ctx, message, cliUserID, useRAG)
	fmt.Printf("[%s/%s conf=%.2f] %s\n", result.Intent, result.ResponseType, result.Confidence, result.Response)
	if result.ResponseType == ResponseTypeRAG {
		fmt.Printf("(sources=%d context=%d chars)\n", result.SourcesUsed, result.ContextLength)
	}
}

// cliIngest loads every document in the document directory into the
// knowledge base.
func cliIngest(ctx context.Context, manager *ConversationManager, loader *DocumentLoader) {
	segments := loader.LoadAll()
	if len(segments) == 0 {
		fmt.Printf("No documents found in %s\n", loader.Dir())
		return
	}
	result := manager.IngestDocuments(ctx, segments)
	if !result.Success {
		fmt.Printf("Error: %s\n", result.Error)
		return
	}
	fmt.Printf("Ingested %d chunks from %d segments.\n", result.DocumentsAdded, len(segments))
}

// cliSearch runs a raw similarity search without generation.
func cliSearch(ctx context.Context, manager *ConversationManager, query string) {
	segments := manager.store.Search(ctx, query, manager.rag.topK)
	if len(segments) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, seg := range segments {
		content := seg.Content
		if runes := []rune(content); len(runes) > 200 {
			content = string(runes[:200]) + "..."
		}
		fmt.Printf("%d. [%s] %s\n", i+1, seg.Source(), content)
	}
}

// cliStats prints knowledge base and session statistics.
func cliStats(manager *ConversationManager) {
	kb := manager.KnowledgeBaseStats()
	fmt.Printf("Knowledge base: %d documents in %q (%s)\n", kb.TotalDocuments, kb.CollectionName, kb.PersistDir)
	if stats, ok := manager.SessionStats(cliUserID); ok {
		fmt.Printf("Session: %d messages, %d active conversations\n", stats.MessageCount, stats.ActiveConversations)
	} else {
		fmt.Println("Session: none")
	}
}

// cliHistory prints the completed turns of the CLI session.
func cliHistory(manager *ConversationManager) {
	turns := manager.SessionHistory(cliUserID)
	if len(turns) == 0 {
		fmt.Println("No history.")
		return
	}
	for _, turn := range turns {
		fmt.Printf("you: %s\nbot: %s\n", turn.User, turn.Assistant)
	}
}

package main

// Model configuration constants
const (
	// Embedding model for generating vector representations
	DefaultEmbeddingModel = "gemini-embedding-001"
	// Chat model for direct and retrieval-augmented responses
	DefaultChatModel = "gemini-2.0-flash"
	// Output dimensionality for embeddings (MRL optimized)
	EmbeddingDimension = 768
	// Default sampling temperature for generation
	DefaultTemperature = 0.7
	// Default output token cap for generation
	DefaultMaxTokens = 1000
)

// Embedding task type constants
const (
	// Task type for storing documents
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	// Task type for querying
	TaskTypeQuery = "RETRIEVAL_QUERY"
	// Prefix to mark query tasks in the embedding function
	QueryTaskPrefix = "QUERY_TASK:"
)

// Knowledge base constants
const (
	// Collection name in the vector database
	CollectionName = "documents"
	// Default persist directory for the vector index
	DefaultPersistDir = "data/chroma"
	// Default directory holding uploaded source documents
	DefaultDocumentDir = "data"
	// Default directory for the badger document registry
	DefaultRegistryDir = "data/registry"
	// Target chunk size in characters
	ChunkSize = 1000
	// Overlap between consecutive chunks, taken from the previous chunk's tail
	ChunkOverlap = 200
)

// Retrieval constants
const (
	// Number of segments retrieved per RAG query
	RAGTopK = 4
	// Maximum characters of a segment included in the prompt context
	MaxContextSegmentLength = 500
	// Context placeholder when retrieval returns nothing
	NoDocumentsContext = "No relevant documents found."
)

// Generation cost per one million tokens in USD. Gemini reports token
// counts but not cost, so cost is derived here.
const (
	InputTokenPricePerMillion  = 0.10
	OutputTokenPricePerMillion = 0.40
)

// System prompt for the direct chat pipeline
const ChatSystemPrompt = `You are a helpful AI assistant. You provide accurate,
informative, and engaging responses. Always be polite and professional.`

// Grounding prompt template for the RAG pipeline: context block, question,
// then the instruction for insufficient context.
const RAGPromptTemplate = `You are a helpful AI assistant with access to a knowledge base. Use the provided context to answer the user's question accurately and comprehensively.

Context:
%s

Question: %s

Please provide a detailed answer based on the context provided. If the context doesn't contain enough information to answer the question, say so and provide a general response based on your knowledge.

Answer:`

// Server constants
const (
	ServerName    = "genai-chatbot"
	ServerVersion = "1.0.0"
)

// Response type tags attached to every processed message
const (
	ResponseTypeChat  = "chat"
	ResponseTypeRAG   = "rag"
	ResponseTypeError = "error"
)

// CLI messages
const (
	PromptStr     = "chat> "
	WelcomeMsg    = "=== GenAI Chatbot Test Mode ==="
	HelpMsg       = "Commands: chat <msg> | ask <q> | ingest | search <q> | stats | history | clear | wipe | exit"
	UnknownCmdMsg = "Unknown command. Try: chat, ask, ingest, search, stats, history, clear, wipe, exit"
)

package main

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/philippgille/chromem-go"
	"google.golang.org/genai"
)

// makeGeminiEmbedder creates an embedding function backed by Gemini's
// embedding API. Query texts are marked with QueryTaskPrefix so the right
// task type is selected for retrieval accuracy.
func makeGeminiEmbedder(client *genai.Client, modelName string) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		taskType := TaskTypeDocument
		if strings.HasPrefix(text, QueryTaskPrefix) {
			taskType = TaskTypeQuery
			text = strings.TrimPrefix(text, QueryTaskPrefix)
		}

		contents := []*genai.Content{{Parts: []*genai.Part{{Text: text}}}}
		dim := int32(EmbeddingDimension)
		res, err := client.Models.EmbedContent(ctx, modelName, contents, &genai.EmbedContentConfig{
			TaskType:             taskType,
			OutputDimensionality: &dim,
		})
		if err != nil {
			return nil, err
		}
		if len(res.Embeddings) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}
		values := res.Embeddings[0].Values
		normalize(values)
		return values, nil
	}
}

// normalize performs L2 normalization in place, putting embeddings on the
// unit sphere for cosine similarity.
func normalize(v []float32) {
	var sum float64
	for _, val := range v {
		sum += float64(val * val)
	}
	magnitude := float32(math.Sqrt(sum))
	if magnitude <= 0 {
		return
	}
	for i := range v {
		v[i] /= magnitude
	}
}

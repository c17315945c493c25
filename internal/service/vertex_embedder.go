package service

import (
	"context"
	"fmt"
	"os"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/reposcout/reposcout/internal/models"
)

// Task-type hints understood by the embedding models.
const (
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// VertexEmbedder generates embeddings through the Vertex AI prediction
// API. The model is fixed at construction: indexing and querying must
// share it.
type VertexEmbedder struct {
	client    *aiplatform.PredictionClient
	modelName string
}

// NewVertexEmbedder creates the embedder for one publisher model.
func NewVertexEmbedder(ctx context.Context, projectID, location, model string) (*VertexEmbedder, error) {
	opts := []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)),
	}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := aiplatform.NewPredictionClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create Vertex AI client: %w", err)
	}

	return &VertexEmbedder{
		client: client,
		modelName: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			projectID, location, model),
	}, nil
}

// EmbedDocument embeds text for storage.
func (v *VertexEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return v.embed(ctx, text, taskRetrievalDocument)
}

// EmbedQuery embeds a search query so it aligns with document embeddings.
func (v *VertexEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return v.embed(ctx, text, taskRetrievalQuery)
}

func (v *VertexEmbedder) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	instance, err := structpb.NewStruct(map[string]interface{}{
		"content":   text,
		"task_type": taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: build instance: %v", models.ErrEmbeddingService, err)
	}

	resp, err := v.client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:  v.modelName,
		Instances: []*structpb.Value{structpb.NewStructValue(instance)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmbeddingService, err)
	}

	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("%w: no predictions returned", models.ErrEmbeddingService)
	}

	prediction := resp.Predictions[0].GetStructValue()
	embeddings := prediction.GetFields()["embeddings"].GetStructValue()
	values := embeddings.GetFields()["values"].GetListValue().GetValues()
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: response has no embedding values", models.ErrEmbeddingService)
	}

	result := make([]float32, len(values))
	for i, val := range values {
		result[i] = float32(val.GetNumberValue())
	}
	return result, nil
}

// Close releases the Vertex AI client resources.
func (v *VertexEmbedder) Close() error {
	return v.client.Close()
}

package service

import "context"

// Stand-in AI clients for wiring the service without GCP credentials.

type dummyEmbedder struct {
	dim int
}

// NewDummyEmbedder returns an embedder producing zero vectors of the
// given dimension.
func NewDummyEmbedder(dim int) EmbeddingClient {
	return dummyEmbedder{dim: dim}
}

func (d dummyEmbedder) EmbedDocument(context.Context, string) ([]float32, error) {
	return make([]float32, d.dim), nil
}

func (d dummyEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return make([]float32, d.dim), nil
}

type dummyLLM struct{}

// NewDummyLLM returns a generator that always answers with a placeholder.
func NewDummyLLM() Generator {
	return dummyLLM{}
}

func (d dummyLLM) Generate(context.Context, string) (string, error) {
	return "<placeholder answer>", nil
}

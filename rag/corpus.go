// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/api/iterator"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

// CreateCorpus creates a corpus and waits for the creation operation to
// complete. The returned corpus carries the service-assigned resource name.
//
// When corpus.Backend is nil the service-managed vector database and
// [DefaultEmbeddingModel] are used.
func (s *Service) CreateCorpus(ctx context.Context, corpus *Corpus) (*Corpus, error) {
	if corpus == nil || corpus.DisplayName == "" {
		return nil, errors.New("rag: corpus display name is required")
	}
	if corpus.Backend == nil {
		corpus.Backend = &VectorDBConfig{
			EmbeddingModel: &EmbeddingModelConfig{PublisherModel: DefaultEmbeddingModel},
			ManagedDB:      &ManagedDBConfig{},
		}
	}

	s.logger.InfoContext(ctx, "creating corpus",
		slog.String("parent", s.parent()),
		slog.String("display_name", corpus.DisplayName),
	)

	op, err := s.dataClient.CreateRagCorpus(ctx, &aiplatformpb.CreateRagCorpusRequest{
		Parent: s.parent(),
		RagCorpus: &aiplatformpb.RagCorpus{
			DisplayName:       corpus.DisplayName,
			Description:       corpus.Description,
			RagVectorDbConfig: vectorDBConfigToProto(corpus.Backend),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create corpus: %w", err)
	}
	created, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait for corpus creation: %w", err)
	}

	result := corpusFromProto(created)
	s.logger.InfoContext(ctx, "corpus created",
		slog.String("name", result.Name),
	)
	return result, nil
}

// CreateDefaultCorpus creates a corpus backed by the managed vector database
// with the default embedding model.
func (s *Service) CreateDefaultCorpus(ctx context.Context, displayName, description string) (*Corpus, error) {
	return s.CreateCorpus(ctx, &Corpus{
		DisplayName: displayName,
		Description: description,
	})
}

// GetCorpus retrieves a corpus by its full resource name.
func (s *Service) GetCorpus(ctx context.Context, name string) (*Corpus, error) {
	pb, err := s.dataClient.GetRagCorpus(ctx, &aiplatformpb.GetRagCorpusRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("get corpus %s: %w", name, err)
	}
	return corpusFromProto(pb), nil
}

// ListCorpora returns all corpora in the project and location, walking every
// page of results.
func (s *Service) ListCorpora(ctx context.Context) ([]*Corpus, error) {
	it := s.dataClient.ListRagCorpora(ctx, &aiplatformpb.ListRagCorporaRequest{
		Parent: s.parent(),
	})

	var corpora []*Corpus
	for {
		pb, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list corpora: %w", err)
		}
		corpora = append(corpora, corpusFromProto(pb))
	}

	s.logger.InfoContext(ctx, "listed corpora",
		slog.Int("count", len(corpora)),
	)
	return corpora, nil
}

// UpdateCorpus updates the fields of corpus named by paths (e.g.
// "display_name", "description") and waits for the operation to complete.
func (s *Service) UpdateCorpus(ctx context.Context, corpus *Corpus, paths ...string) (*Corpus, error) {
	if corpus == nil || corpus.Name == "" {
		return nil, errors.New("rag: corpus name is required for update")
	}

	req := &aiplatformpb.UpdateRagCorpusRequest{
		RagCorpus: &aiplatformpb.RagCorpus{
			Name:        corpus.Name,
			DisplayName: corpus.DisplayName,
			Description: corpus.Description,
		},
	}
	if len(paths) > 0 {
		mask, err := fieldmaskpb.New(req.RagCorpus, paths...)
		if err != nil {
			return nil, fmt.Errorf("build update mask: %w", err)
		}
		req.UpdateMask = mask
	}

	op, err := s.dataClient.UpdateRagCorpus(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("update corpus %s: %w", corpus.Name, err)
	}
	updated, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait for corpus update: %w", err)
	}
	return corpusFromProto(updated), nil
}

// DeleteCorpus deletes a corpus. With force set, contained files are deleted
// as well.
func (s *Service) DeleteCorpus(ctx context.Context, name string, force bool) error {
	s.logger.InfoContext(ctx, "deleting corpus",
		slog.String("name", name),
		slog.Bool("force", force),
	)

	op, err := s.dataClient.DeleteRagCorpus(ctx, &aiplatformpb.DeleteRagCorpusRequest{
		Name:  name,
		Force: force,
	})
	if err != nil {
		return fmt.Errorf("delete corpus %s: %w", name, err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for corpus deletion: %w", err)
	}
	return nil
}

func vectorDBConfigToProto(cfg *VectorDBConfig) *aiplatformpb.RagVectorDbConfig {
	if cfg == nil {
		return nil
	}

	pb := &aiplatformpb.RagVectorDbConfig{}

	if cfg.EmbeddingModel != nil {
		endpoint := cfg.EmbeddingModel.PublisherModel
		if endpoint == "" {
			endpoint = cfg.EmbeddingModel.Endpoint
		}
		pb.RagEmbeddingModelConfig = &aiplatformpb.RagEmbeddingModelConfig{
			ModelConfig: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint_{
				VertexPredictionEndpoint: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint{
					Endpoint: endpoint,
					Model:    cfg.EmbeddingModel.Model,
				},
			},
		}
	}

	switch {
	case cfg.Weaviate != nil:
		pb.VectorDb = &aiplatformpb.RagVectorDbConfig_Weaviate_{
			Weaviate: &aiplatformpb.RagVectorDbConfig_Weaviate{
				HttpEndpoint:   cfg.Weaviate.HTTPEndpoint,
				CollectionName: cfg.Weaviate.CollectionName,
			},
		}
	case cfg.Pinecone != nil:
		pb.VectorDb = &aiplatformpb.RagVectorDbConfig_Pinecone_{
			Pinecone: &aiplatformpb.RagVectorDbConfig_Pinecone{
				IndexName: cfg.Pinecone.IndexName,
			},
		}
	case cfg.VertexVectorSearch != nil:
		pb.VectorDb = &aiplatformpb.RagVectorDbConfig_VertexVectorSearch_{
			VertexVectorSearch: &aiplatformpb.RagVectorDbConfig_VertexVectorSearch{
				IndexEndpoint: cfg.VertexVectorSearch.IndexEndpoint,
				Index:         cfg.VertexVectorSearch.Index,
			},
		}
	default:
		pb.VectorDb = &aiplatformpb.RagVectorDbConfig_RagManagedDb_{
			RagManagedDb: &aiplatformpb.RagVectorDbConfig_RagManagedDb{},
		}
	}

	return pb
}

func vectorDBConfigFromProto(pb *aiplatformpb.RagVectorDbConfig) *VectorDBConfig {
	if pb == nil {
		return nil
	}

	cfg := &VectorDBConfig{}

	if emb := pb.GetRagEmbeddingModelConfig(); emb != nil {
		if ep := emb.GetVertexPredictionEndpoint(); ep != nil {
			cfg.EmbeddingModel = &EmbeddingModelConfig{Model: ep.GetModel()}
			// The wire format carries publisher models and custom prediction
			// endpoints in the same field; only publisher models contain a
			// publishers/ path segment.
			if strings.Contains(ep.GetEndpoint(), "publishers/") {
				cfg.EmbeddingModel.PublisherModel = ep.GetEndpoint()
			} else {
				cfg.EmbeddingModel.Endpoint = ep.GetEndpoint()
			}
		}
	}

	switch db := pb.GetVectorDb().(type) {
	case *aiplatformpb.RagVectorDbConfig_RagManagedDb_:
		cfg.ManagedDB = &ManagedDBConfig{}
	case *aiplatformpb.RagVectorDbConfig_Weaviate_:
		cfg.Weaviate = &WeaviateConfig{
			HTTPEndpoint:   db.Weaviate.GetHttpEndpoint(),
			CollectionName: db.Weaviate.GetCollectionName(),
		}
	case *aiplatformpb.RagVectorDbConfig_Pinecone_:
		cfg.Pinecone = &PineconeConfig{
			IndexName: db.Pinecone.GetIndexName(),
		}
	case *aiplatformpb.RagVectorDbConfig_VertexVectorSearch_:
		cfg.VertexVectorSearch = &VertexVectorSearchConfig{
			IndexEndpoint: db.VertexVectorSearch.GetIndexEndpoint(),
			Index:         db.VertexVectorSearch.GetIndex(),
		}
	}

	return cfg
}

func corpusFromProto(pb *aiplatformpb.RagCorpus) *Corpus {
	if pb == nil {
		return nil
	}

	corpus := &Corpus{
		Name:        pb.GetName(),
		DisplayName: pb.GetDisplayName(),
		Description: pb.GetDescription(),
		Backend:     vectorDBConfigFromProto(pb.GetRagVectorDbConfig()),
		State:       CorpusStateUnspecified,
	}

	switch pb.GetCorpusStatus().GetState() {
	case aiplatformpb.CorpusStatus_INITIALIZED:
		corpus.State = CorpusStateActive
	case aiplatformpb.CorpusStatus_ERROR:
		corpus.State = CorpusStateError
	}

	if ts := pb.GetCreateTime(); ts != nil {
		t := ts.AsTime()
		corpus.CreateTime = &t
	}
	if ts := pb.GetUpdateTime(); ts != nil {
		t := ts.AsTime()
		corpus.UpdateTime = &t
	}

	return corpus
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"fmt"
	"time"
)

// DefaultEmbeddingModel is the publisher model used when a corpus is created
// without an explicit embedding model configuration.
const DefaultEmbeddingModel = "publishers/google/models/text-embedding-005"

// Default retrieval parameters applied by the convenience query methods.
const (
	DefaultTopK              = 10
	DefaultDistanceThreshold = 0.7
)

// CorpusState represents the lifecycle state of a corpus.
type CorpusState string

const (
	CorpusStateUnspecified CorpusState = "CORPUS_STATE_UNSPECIFIED"
	CorpusStateActive      CorpusState = "ACTIVE"
	CorpusStateError       CorpusState = "ERROR"
)

// FileState represents the lifecycle state of a file within a corpus.
type FileState string

const (
	FileStateUnspecified FileState = "FILE_STATE_UNSPECIFIED"
	FileStateActive      FileState = "ACTIVE"
	FileStateError       FileState = "ERROR"
)

// EmbeddingModelConfig selects the embedding model a corpus uses for indexing.
//
// Set PublisherModel for a first-party model such as [DefaultEmbeddingModel],
// or Endpoint/Model for a custom prediction endpoint.
type EmbeddingModelConfig struct {
	PublisherModel string `json:"publisher_model,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"`
	Model          string `json:"model,omitempty"`
}

// VectorDBConfig configures the vector database backend of a corpus.
// At most one backend may be set; the managed database is used when none is.
type VectorDBConfig struct {
	EmbeddingModel     *EmbeddingModelConfig     `json:"embedding_model,omitempty"`
	ManagedDB          *ManagedDBConfig          `json:"managed_db,omitempty"`
	Weaviate           *WeaviateConfig           `json:"weaviate,omitempty"`
	Pinecone           *PineconeConfig           `json:"pinecone,omitempty"`
	VertexVectorSearch *VertexVectorSearchConfig `json:"vertex_vector_search,omitempty"`
}

// ManagedDBConfig selects the service-managed vector database.
type ManagedDBConfig struct{}

// WeaviateConfig points a corpus at a self-managed Weaviate instance.
type WeaviateConfig struct {
	HTTPEndpoint   string `json:"http_endpoint,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
}

// PineconeConfig points a corpus at a Pinecone index.
type PineconeConfig struct {
	IndexName string `json:"index_name,omitempty"`
}

// VertexVectorSearchConfig points a corpus at a Vertex Vector Search index.
type VertexVectorSearchConfig struct {
	IndexEndpoint string `json:"index_endpoint,omitempty"`
	Index         string `json:"index,omitempty"`
}

// Corpus is a named, service-managed collection of indexed documents.
//
// Name is assigned by the service on creation, in the form
// projects/{project}/locations/{location}/ragCorpora/{corpus}.
type Corpus struct {
	Name        string          `json:"name,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	Description string          `json:"description,omitempty"`
	Backend     *VectorDBConfig `json:"backend,omitempty"`
	State       CorpusState     `json:"state,omitempty"`
	CreateTime  *time.Time      `json:"create_time,omitempty"`
	UpdateTime  *time.Time      `json:"update_time,omitempty"`
}

// File is a document associated with a corpus. Chunking and embedding of its
// content happen server-side after upload or import.
type File struct {
	Name        string      `json:"name,omitempty"`
	DisplayName string      `json:"display_name,omitempty"`
	Description string      `json:"description,omitempty"`
	Source      *FileSource `json:"source,omitempty"`
	State       FileState   `json:"state,omitempty"`
	SizeBytes   int64       `json:"size_bytes,omitempty"`
	CreateTime  *time.Time  `json:"create_time,omitempty"`
	UpdateTime  *time.Time  `json:"update_time,omitempty"`
}

// FileSource records where a file's content came from.
type FileSource struct {
	GCS    *GCSSource    `json:"gcs,omitempty"`
	Drive  *DriveSource  `json:"drive,omitempty"`
	Direct *DirectSource `json:"direct,omitempty"`
}

// GCSSource references objects in Cloud Storage, e.g. "gs://bucket/docs/intro.txt"
// or a prefix such as "gs://bucket/docs/".
type GCSSource struct {
	URIs []string `json:"uris,omitempty"`
}

// DriveSource references Google Drive folders or files by resource ID.
type DriveSource struct {
	ResourceIDs []string `json:"resource_ids,omitempty"`
}

// DirectSource marks a file that was uploaded directly.
type DirectSource struct{}

// ChunkingConfig controls how the service splits a document before embedding.
type ChunkingConfig struct {
	// ChunkSize is the maximum token count per chunk.
	ChunkSize int32 `json:"chunk_size,omitempty"`

	// ChunkOverlap is the token overlap between consecutive chunks.
	ChunkOverlap int32 `json:"chunk_overlap,omitempty"`
}

// ImportConfig describes a bulk import into a corpus. Exactly one of GCS or
// Drive must be set.
type ImportConfig struct {
	GCS   *GCSSource   `json:"gcs,omitempty"`
	Drive *DriveSource `json:"drive,omitempty"`

	// Chunking overrides the corpus default transformation, if set.
	Chunking *ChunkingConfig `json:"chunking,omitempty"`

	// MaxEmbeddingRequestsPerMin rate-limits the server-side embedding calls
	// issued on behalf of this import. Zero means the service default.
	MaxEmbeddingRequestsPerMin int32 `json:"max_embedding_requests_per_min,omitempty"`
}

func (c *ImportConfig) validate() error {
	if c == nil {
		return fmt.Errorf("import config is required")
	}
	if (c.GCS == nil) == (c.Drive == nil) {
		return fmt.Errorf("exactly one of GCS or Drive source must be set")
	}
	if c.GCS != nil && len(c.GCS.URIs) == 0 {
		return fmt.Errorf("GCS source has no URIs")
	}
	if c.Drive != nil && len(c.Drive.ResourceIDs) == 0 {
		return fmt.Errorf("drive source has no resource IDs")
	}
	return nil
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	ImportedCount int64 `json:"imported_count"`
	FailedCount   int64 `json:"failed_count"`
	SkippedCount  int64 `json:"skipped_count"`
}

// Query is an ephemeral retrieval request. It is not persisted anywhere.
type Query struct {
	// Text is the free-text query.
	Text string `json:"text"`

	// TopK bounds the number of returned contexts.
	TopK int32 `json:"top_k,omitempty"`

	// DistanceThreshold is the maximum vector distance for a context to be
	// considered relevant. Zero means the service default.
	DistanceThreshold float64 `json:"distance_threshold,omitempty"`
}

func (q *Query) validate() error {
	if q == nil || q.Text == "" {
		return fmt.Errorf("query text is required")
	}
	if q.TopK <= 0 {
		return fmt.Errorf("query top-k must be positive, got %d", q.TopK)
	}
	if q.DistanceThreshold < 0 {
		return fmt.Errorf("query distance threshold must not be negative, got %v", q.DistanceThreshold)
	}
	return nil
}

// Resource names a corpus to retrieve from, optionally restricted to specific
// files within it.
type Resource struct {
	// Corpus is the full corpus resource name.
	Corpus string `json:"corpus"`

	// FileIDs restricts retrieval to the given file IDs within Corpus.
	FileIDs []string `json:"file_ids,omitempty"`
}

// RetrievedContext is one ranked snippet returned by a retrieval query.
type RetrievedContext struct {
	Text              string  `json:"text"`
	Distance          float64 `json:"distance"`
	SourceURI         string  `json:"source_uri,omitempty"`
	SourceDisplayName string  `json:"source_display_name,omitempty"`
}

// CorpusName formats a fully qualified corpus resource name.
func CorpusName(projectID, location, corpusID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/ragCorpora/%s", projectID, location, corpusID)
}

// FileName formats a fully qualified file resource name under corpusName.
func FileName(corpusName, fileID string) string {
	return fmt.Sprintf("%s/ragFiles/%s", corpusName, fileID)
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// prefix is the object name prefix under which staged files are written.
const prefix = "rag-staging"

// Stager copies local files into a Cloud Storage bucket so they can be
// bulk-imported into a corpus. Each Stager namespaces its objects under a
// random run ID, keeping concurrent tutorial runs apart.
type Stager struct {
	client *storage.Client
	bucket string
	runID  string
	logger *slog.Logger

	clientOpts []option.ClientOption
}

// StagerOption configures a [Stager].
type StagerOption func(*Stager)

// WithLogger sets the logger used by the stager. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) StagerOption {
	return func(s *Stager) {
		s.logger = logger
	}
}

// WithClientOptions appends extra client options for the storage client.
func WithClientOptions(opts ...option.ClientOption) StagerOption {
	return func(s *Stager) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

// NewStager creates a stager writing into bucket with Application Default
// Credentials.
func NewStager(ctx context.Context, bucket string, opts ...StagerOption) (*Stager, error) {
	if bucket == "" {
		return nil, errors.New("staging: bucket is required")
	}

	s := &Stager{
		bucket: bucket,
		runID:  uuid.NewString(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	client, err := storage.NewClient(ctx, s.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	s.client = client

	return s, nil
}

// Close releases the underlying storage client.
func (s *Stager) Close() error {
	return s.client.Close()
}

// RunID returns the namespace for this stager's objects.
func (s *Stager) RunID() string { return s.runID }

// Stage uploads the local file at localPath and returns its gs:// URI.
func (s *Stager) Stage(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	object := s.objectName(localPath)
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("write gs://%s/%s: %w", s.bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize gs://%s/%s: %w", s.bucket, object, err)
	}

	uri := fmt.Sprintf("gs://%s/%s", s.bucket, object)
	s.logger.InfoContext(ctx, "staged file",
		slog.String("local_path", localPath),
		slog.String("uri", uri),
	)
	return uri, nil
}

// StageAll uploads several local files concurrently and returns their gs://
// URIs in input order.
func (s *Stager) StageAll(ctx context.Context, localPaths []string) ([]string, error) {
	uris := make([]string, len(localPaths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range localPaths {
		g.Go(func() error {
			uri, err := s.Stage(ctx, p)
			if err != nil {
				return err
			}
			uris[i] = uri
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return uris, nil
}

// Cleanup deletes every object staged under this stager's run ID.
func (s *Stager) Cleanup(ctx context.Context) error {
	bucket := s.client.Bucket(s.bucket)
	it := bucket.Objects(ctx, &storage.Query{
		Prefix: path.Join(prefix, s.runID) + "/",
	})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("list staged objects: %w", err)
		}
		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
			return fmt.Errorf("delete gs://%s/%s: %w", s.bucket, attrs.Name, err)
		}
	}
	return nil
}

func (s *Stager) objectName(localPath string) string {
	return path.Join(prefix, s.runID, filepath.Base(localPath))
}

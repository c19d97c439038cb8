// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"
)

// Service is the handle for all RAG Engine operations, bound to a Google
// Cloud project and location for its lifetime.
//
// A Service is safe for concurrent use by multiple goroutines.
type Service struct {
	retrievalClient *aiplatform.VertexRagClient
	dataClient      *aiplatform.VertexRagDataClient

	projectID string
	location  string
	logger    *slog.Logger

	clientOpts []option.ClientOption
}

// ServiceOption configures a [Service].
type ServiceOption func(*Service)

// WithLogger sets the logger used by the service. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClientOptions appends extra client options for the underlying API
// clients, e.g. [option.WithEndpoint] for a regional endpoint.
func WithClientOptions(opts ...option.ClientOption) ServiceOption {
	return func(s *Service) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

// NewService creates a RAG Engine service bound to the given project and
// location, authenticating with Application Default Credentials.
func NewService(ctx context.Context, projectID, location string, opts ...ServiceOption) (*Service, error) {
	if projectID == "" {
		return nil, errors.New("rag: projectID is required")
	}
	if location == "" {
		return nil, errors.New("rag: location is required")
	}

	s := &Service{
		projectID: projectID,
		location:  location,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{
			"https://www.googleapis.com/auth/cloud-platform",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("detect default credentials: %w", err)
	}

	clientOpts := append([]option.ClientOption{
		option.WithAuthCredentials(creds),
		option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)),
	}, s.clientOpts...)

	s.retrievalClient, err = aiplatform.NewVertexRagClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create Vertex RAG client: %w", err)
	}
	s.dataClient, err = aiplatform.NewVertexRagDataClient(ctx, clientOpts...)
	if err != nil {
		s.retrievalClient.Close()
		return nil, fmt.Errorf("create Vertex RAG data client: %w", err)
	}

	s.logger.InfoContext(ctx, "RAG service initialized",
		slog.String("project_id", projectID),
		slog.String("location", location),
	)

	return s, nil
}

// Close releases the underlying API client connections.
func (s *Service) Close() error {
	return errors.Join(
		s.retrievalClient.Close(),
		s.dataClient.Close(),
	)
}

// ProjectID returns the project the service is bound to.
func (s *Service) ProjectID() string { return s.projectID }

// Location returns the location the service is bound to.
func (s *Service) Location() string { return s.location }

// parent returns the projects/{project}/locations/{location} prefix used as
// the parent resource for corpus operations.
func (s *Service) parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", s.projectID, s.location)
}

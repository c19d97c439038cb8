// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package rag is a client for the Vertex AI RAG Engine.
//
// The package covers the full tutorial workflow: corpus management, document
// upload and bulk import, and context retrieval. All substantive work
// (chunking, embedding, indexing, vector search) happens server-side; this
// client constructs requests, authenticates, and converts responses.
//
// Basic usage:
//
//	svc, err := rag.NewService(ctx, "my-project", "us-central1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer svc.Close()
//
//	corpus, err := svc.CreateDefaultCorpus(ctx, "My Corpus", "tutorial corpus")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_, err = svc.ImportFiles(ctx, corpus.Name, &rag.ImportConfig{
//		GCS:      &rag.GCSSource{URIs: []string{"gs://my-bucket/docs/"}},
//		Chunking: &rag.ChunkingConfig{ChunkSize: 512, ChunkOverlap: 100},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	contexts, err := svc.QueryCorpus(ctx, corpus.Name, "What is RAG?")
//
// For retrieval-grounded generation, pair a corpus with the generation
// package, which attaches it as a retrieval tool on a Gemini call.
package rag

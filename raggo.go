// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package raggo is a code-first Go toolkit for retrieval-augmented generation
// workflows on the Vertex AI RAG Engine: corpus and document management,
// context retrieval, and retrieval-grounded Gemini generation.
package raggo

// Version is the version of the toolkit.
var Version = "v0.0.0"

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package generation wraps Gemini generation calls on Vertex AI and builds
// the retrieval tools that ground them in RAG corpora.
package generation

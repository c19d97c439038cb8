// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package staging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestNewStager_EmptyBucket(t *testing.T) {
	t.Parallel()

	if _, err := NewStager(t.Context(), ""); err == nil {
		t.Fatal("NewStager() expected error for empty bucket, got nil")
	}
}

func TestObjectName(t *testing.T) {
	t.Parallel()

	s := &Stager{
		bucket: "test-bucket",
		runID:  "run-1234",
		logger: slog.Default(),
	}

	tests := []struct {
		name      string
		localPath string
		want      string
	}{
		{
			name:      "relative_path",
			localPath: "docs/intro.txt",
			want:      "rag-staging/run-1234/intro.txt",
		},
		{
			name:      "absolute_path",
			localPath: "/tmp/data/guide.pdf",
			want:      "rag-staging/run-1234/guide.pdf",
		},
		{
			name:      "bare_name",
			localPath: "notes.md",
			want:      "rag-staging/run-1234/notes.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.objectName(tt.localPath)
			if got != tt.want {
				t.Errorf("objectName(%q) = %q, want %q", tt.localPath, got, tt.want)
			}
		})
	}
}

func TestRunID_Unique(t *testing.T) {
	t.Parallel()

	// Two stagers must never collide on object names.
	a := &Stager{runID: "a"}
	b := &Stager{runID: "b"}
	if a.objectName("x.txt") == b.objectName("x.txt") {
		t.Error("stagers with different run IDs produced the same object name")
	}

	if !strings.HasPrefix(a.objectName("x.txt"), prefix+"/") {
		t.Errorf("object name %q not under prefix %q", a.objectName("x.txt"), prefix)
	}
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package generation

import (
	"log/slog"
	"testing"
)

func TestNewGenerator_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		projectID string
		location  string
	}{
		{
			name:     "empty_project",
			location: "us-central1",
		},
		{
			name:      "empty_location",
			projectID: "test-project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewGenerator(t.Context(), tt.projectID, tt.location, ""); err == nil {
				t.Fatal("NewGenerator() expected error, got nil")
			}
		})
	}
}

func TestGenerateContent_EmptyPrompt(t *testing.T) {
	t.Parallel()

	// Prompt validation runs before the client is touched.
	g := &Generator{model: DefaultModel, logger: slog.Default()}
	if _, err := g.GenerateContent(t.Context(), ""); err == nil {
		t.Fatal("GenerateContent() expected error for empty prompt, got nil")
	}
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values, so a
// logger configured at the top of an operation propagates to everything it
// calls:
//
//	logger := logging.NewLogger(os.Stderr, false)
//	ctx = logging.NewContext(ctx, logger)
//
//	// anywhere below:
//	logging.FromContext(ctx).Info("corpus created", "name", corpus.Name)
//
// When ctx carries no logger, FromContext falls back to [slog.Default], so
// logging always works without explicit configuration.
package logging

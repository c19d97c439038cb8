// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package staging uploads local documents to Cloud Storage as a staging area
// for corpus imports.
package staging

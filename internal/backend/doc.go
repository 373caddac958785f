// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client and resilient facade for the
// ChatFS backend process.
//
// The Client speaks the backend's small HTTP API (file content, semantic
// search) and classifies failures into three classes: expected absence,
// backend unreachable, and backend application error.
//
// The Facade wraps each operation in a uniform resilient pattern: attempt
// the real call, classify the failure, fall back to deterministic
// synthetic data, and tag the result with its provenance. Facade calls
// never return errors; degraded mode is data, carried on the FetchResult.
//
// The Monitor polls the probe operation on a fixed interval so the
// presentation layer can display live-vs-degraded mode.
package backend

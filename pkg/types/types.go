// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the companydir pipeline:
// the Company record and extraction Issue diagnostics, the Document record
// linking catalog entries back to their source, and per-stage configuration.
package types

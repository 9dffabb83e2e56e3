// Package applog is the sample replicated application: an append-only
// integer log with indexed reads. It exists to give the agreement engine
// something deterministic to replicate; the engine itself only sees the
// single-method hook in package engine.
package applog

// Package mockapi provides local simulators for the TruthLens backend:
// a heuristic verification generator and an in-memory auth/profile
// backend. Both satisfy the strategy interfaces in package api, so pages
// cannot tell them apart from the HTTP client.
//
// The simulators emulate network behavior (randomized latency, a small
// transient-failure rate) through injectable clock/rng/sleep seams, which
// tests replace to keep results deterministic.
package mockapi

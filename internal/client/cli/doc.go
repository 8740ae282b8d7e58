// Package cli implements the interactive TruthLens terminal client.
//
// The client is a small REPL with three "pages": the document checker,
// login/signup, and the profile viewer/editor. Each command runs one
// request at a time; errors are rendered inline and never terminate the
// loop. API access goes through the service layer, which hides whether
// the backend is the real HTTP service or the local simulators.
package cli

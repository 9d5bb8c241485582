// SPDX-License-Identifier: EPL-2.0

// Package engine runs the external ViSQOL executable on one reference and
// degraded pair and turns its output into an Outcome.
//
// Each call to Invoker.Score moves through these stages, logged at debug
// level with a "stage" attribute:
//
//	preparing -> normalizing -> invoking -> parsing
//
// A failure at any stage ends the call with an Outcome whose Kind says where
// it failed. Score never returns an error and never panics on engine
// misbehaviour, so one bad pair cannot stop a batch.
//
// # Process handling
//
// The engine gets its own deadline, derived from context.WithoutCancel, so
// cancelling the caller's context does not kill a running engine. On Unix the
// engine runs in a new process group and a timeout sends SIGKILL to the whole
// group.
//
// Temporary files created while normalizing are removed on every return path.
//
// # Locating the engine
//
// Locator and the Resolver helpers search bundled, developer and system
// paths in a fixed order:
//
//	exe, model, err := engine.Locator{}.Locate()
//	inv, err := engine.New(engine.Config{Executable: exe, Model: model})
package engine

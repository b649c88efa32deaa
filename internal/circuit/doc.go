// Package circuit provides the gate-sequence data model for qglitch.
//
// This package contains type definitions, the static gate descriptor table,
// deep-copy helpers, the opt-in validity pass, and content-addressed circuit
// identity. All other internal packages import circuit; circuit imports
// nothing internal. This keeps the data model the foundational layer with no
// circular dependencies.
//
// Key design constraints:
//   - Gate dispatch goes through the descriptor table (gateTable), never
//     through per-kind control flow
//   - A Circuit is never mutated in place across package boundaries; mutation
//     happens on a Clone
//   - Validity checking is a separate, explicitly-invoked pass (Validate),
//     never an always-on runtime guard - injected bugs must survive long
//     enough to be serialized and fed to downstream validators
//   - All JSON tags use snake_case
package circuit

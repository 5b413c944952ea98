// Package primitives defines the immutable post-build graph of states and
// transitions that backs a hierarchical state machine: StateDef, TransitionDef,
// and the Graph that owns, validates, and indexes them.
//
// Everything here is constructed once by Build and never mutated afterwards;
// mutable runtime state (current state, history, extensions) lives in the
// parent package's Container.
package primitives

// Package orchestrator wires the document → model builder → decorators →
// controller snapshot → renderer pipeline behind a single entry point. The
// base form model is built once per orchestrator; every request clones it and
// overlays the state of the controller it renders.
package orchestrator

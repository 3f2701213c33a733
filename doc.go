// Package facalc implements the evaluation engine of an engineering-economy
// calculator: a small arithmetic expression language with percent-aware
// numeric literals, the standard interest-factor functions, user variables,
// and nested case scopes.
//
// Input is evaluated one line at a time against a Session, which owns the
// variable environment, the visible transcript, and the scope stack. There
// is deliberately no code-execution surface behind the evaluator: calls
// dispatch over a closed table of builtin numeric functions, so an input
// line can never do anything but arithmetic.
package facalc

// Package services contains stateless domain services for the order
// lifecycle.
//
// The central service is the lifecycle Machine: a pure rule evaluator that
// decides whether a requested order-status transition is legal given the
// current status and situational facts supplied by the caller. The machine
// never touches storage and never returns errors for expected rejections;
// rejections are Decision values carrying the precise reason.
//
// The rule table is immutable, injected configuration. Production code uses
// DefaultRules; tests may build a Machine over any alternate rule set.
package services

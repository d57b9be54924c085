package services

import (
	"orderflow/internal/core/domain/model/order"
)

// Audit action labels recorded with approved transitions. The label
// identifies how a state was reached, not just which state: a void after the
// kitchen has fired carries different business risk than a void before, so
// they are distinct actions.
const (
	AuditOrderSentToKitchen     = "order.sent_to_kitchen"
	AuditOrderKitchenAck        = "order.kitchen_acknowledged"
	AuditOrderMarkedReady       = "order.marked_ready"
	AuditOrderServed            = "order.served"
	AuditOrderServedFastTrack   = "order.served_fast_track"
	AuditOrderClosed            = "order.closed"
	AuditOrderClosedUnserved    = "order.closed_unserved"
	AuditOrderVoided            = "order.voided"
	AuditOrderVoidedAfterSend   = "order.voided_after_send"
	AuditOrderVoidedInKitchen   = "order.voided_in_kitchen"
)

// Condition evaluates a transition's situational requirement.
// It returns "" to approve or a human-readable rejection reason. Conditions
// are pure functions over the context; they must not touch storage.
type Condition func(TransitionContext) string

// TransitionRule is one immutable entry of the lifecycle graph. A transition
// not covered by any rule is illegal by default.
//
// Every legal multi-hop path is its own explicit rule (Sent->Served is a
// deliberate entry, not inferred via Sent->Ready->Served), so skip-ahead
// shortcuts are reviewed decisions rather than accidents of graph reachability.
type TransitionRule struct {
	From order.Status
	To   order.Status

	// Condition approves or rejects based on situational facts.
	// nil means the transition is unconditional.
	Condition Condition

	// RequiresReason rejects the transition when the context carries no
	// operator-entered reason, regardless of Condition.
	RequiresReason bool

	// RequiresManagerApproval rejects the transition unless the context
	// carries an explicit manager approval, regardless of Condition.
	RequiresManagerApproval bool

	// AuditAction is the label recorded when the transition is approved.
	AuditAction string
}

// Named conditions used by the default rule set. The reason strings are
// user-visible and must stay actionable ("what do I fix"), not generic.

func requiresItems(ctx TransitionContext) string {
	if !ctx.HasItems {
		return "Cannot send order with no items"
	}
	return ""
}

func requiresAllItemsReady(ctx TransitionContext) string {
	if !ctx.AllItemsReady {
		return "Cannot mark order ready until all items are ready"
	}
	return ""
}

func requiresFullPayment(ctx TransitionContext) string {
	if !ctx.IsPaid {
		return "Order must be paid before closing"
	}
	return ""
}

// DefaultRules returns the production lifecycle graph. The returned slice is
// a fresh copy on every call so no caller can mutate the shared definition.
//
// The graph covers the default dine-in path (New -> Sent -> InKitchen ->
// Ready -> Served -> Closed), the kitchen-acknowledgment detour (InKitchen is
// optional, Sent -> Ready is legal), the fast-food shortcut (Sent -> Served),
// the takeaway close (Ready -> Closed), and void escape hatches from New,
// Sent, and InKitchen.
func DefaultRules() []TransitionRule {
	return []TransitionRule{
		{From: order.New, To: order.Sent, Condition: requiresItems, AuditAction: AuditOrderSentToKitchen},
		{From: order.Sent, To: order.InKitchen, AuditAction: AuditOrderKitchenAck},
		{From: order.Sent, To: order.Ready, Condition: requiresAllItemsReady, AuditAction: AuditOrderMarkedReady},
		{From: order.InKitchen, To: order.Ready, Condition: requiresAllItemsReady, AuditAction: AuditOrderMarkedReady},
		{From: order.Ready, To: order.Served, AuditAction: AuditOrderServed},
		{From: order.Sent, To: order.Served, AuditAction: AuditOrderServedFastTrack},
		{From: order.Served, To: order.Closed, Condition: requiresFullPayment, AuditAction: AuditOrderClosed},
		{From: order.Ready, To: order.Closed, Condition: requiresFullPayment, AuditAction: AuditOrderClosedUnserved},
		{From: order.New, To: order.Voided, RequiresReason: true, AuditAction: AuditOrderVoided},
		{From: order.Sent, To: order.Voided, RequiresReason: true, RequiresManagerApproval: true, AuditAction: AuditOrderVoidedAfterSend},
		{From: order.InKitchen, To: order.Voided, RequiresReason: true, RequiresManagerApproval: true, AuditAction: AuditOrderVoidedInKitchen},
	}
}

package services

import (
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/order"

	"orderflow/internal/pkg/errs"
)

// Decision is the outcome of evaluating a transition. It is a value, not an
// error: expected rejections flow back to callers as data and are converted
// into transport errors only at the outermost boundary.
type Decision struct {
	approved    bool
	auditAction string
	reason      string
}

// IsApproved reports whether the transition may proceed.
func (d Decision) IsApproved() bool {
	return d.approved
}

// AuditAction returns the label to record for an approved transition.
// Same-state no-op approvals carry no audit action.
func (d Decision) AuditAction() string {
	return d.auditAction
}

// Reason returns the human-readable rejection reason for a rejected decision.
func (d Decision) Reason() string {
	return d.reason
}

func approve(auditAction string) Decision {
	return Decision{approved: true, auditAction: auditAction}
}

func reject(reason string) Decision {
	return Decision{reason: reason}
}

type transitionKey struct {
	from order.Status
	to   order.Status
}

// Machine is the order lifecycle state machine: a pure, stateless evaluator
// over an immutable rule table. It holds no mutable state after construction
// and is safe for concurrent use.
type Machine struct {
	rules []TransitionRule
	index map[transitionKey]TransitionRule
}

// NewMachine builds a machine over the given rule table.
// The rules are copied; the caller's slice is never retained. Duplicate
// (from, to) entries are rejected because the table must answer every lookup
// with exactly one reviewed rule.
func NewMachine(rules []TransitionRule) (Machine, error) {
	copied := make([]TransitionRule, len(rules))
	copy(copied, rules)

	index := make(map[transitionKey]TransitionRule, len(copied))
	for _, rule := range copied {
		if err := rule.From.Validate(); err != nil {
			return Machine{}, err
		}
		if err := rule.To.Validate(); err != nil {
			return Machine{}, err
		}
		key := transitionKey{from: rule.From, to: rule.To}
		if _, exists := index[key]; exists {
			return Machine{}, errs.NewValueIsInvalidErrorWithCause(
				"transition rules",
				fmt.Errorf("duplicate rule for transition %s -> %s", rule.From, rule.To),
			)
		}
		index[key] = rule
	}

	return Machine{rules: copied, index: index}, nil
}

// NewDefaultMachine builds a machine over DefaultRules.
// DefaultRules is a static, tested table; a construction failure here is a
// programming error, hence the panic.
func NewDefaultMachine() Machine {
	machine, err := NewMachine(DefaultRules())
	if err != nil {
		panic(err)
	}
	return machine
}

// Evaluate decides whether the transition requested in ctx is legal.
//
// Lookup is an exact match on (current, requested); no partial or transitive
// matching. A same-state request approves as a no-op with no audit action,
// which tolerates idempotent retries of an already-applied target. Reason
// and manager-approval requirements are checked before the rule condition,
// so an unmet requirement rejects regardless of the condition outcome.
func (m Machine) Evaluate(ctx TransitionContext) Decision {
	if ctx.CurrentStatus == ctx.RequestedStatus {
		return approve("")
	}

	rule, ok := m.index[transitionKey{from: ctx.CurrentStatus, to: ctx.RequestedStatus}]
	if !ok {
		return reject(fmt.Sprintf("no transition defined from %s to %s", ctx.CurrentStatus, ctx.RequestedStatus))
	}

	if rule.RequiresReason && strings.TrimSpace(ctx.Reason) == "" {
		return reject(fmt.Sprintf("A reason is required to move order to %s", ctx.RequestedStatus))
	}

	if rule.RequiresManagerApproval && !ctx.ManagerApproved {
		return reject(fmt.Sprintf("Manager approval is required to move order from %s to %s", ctx.CurrentStatus, ctx.RequestedStatus))
	}

	if rule.Condition != nil {
		if reason := rule.Condition(ctx); reason != "" {
			return reject(reason)
		}
	}

	return approve(rule.AuditAction)
}

// CanTransition reports whether an explicit rule covers (from, to).
// It ignores conditions; a covered transition may still be rejected by
// Evaluate when its situational requirements are unmet.
func (m Machine) CanTransition(from, to order.Status) bool {
	_, ok := m.index[transitionKey{from: from, to: to}]
	return ok
}

// AllowedTransitions returns the target statuses reachable from the given
// status, in rule declaration order.
func (m Machine) AllowedTransitions(from order.Status) []order.Status {
	targets := make([]order.Status, 0)
	seen := make(map[order.Status]struct{})
	for _, rule := range m.rules {
		if rule.From != from {
			continue
		}
		if _, dup := seen[rule.To]; dup {
			continue
		}
		seen[rule.To] = struct{}{}
		targets = append(targets, rule.To)
	}
	return targets
}

// IsTerminal reports whether the status has no outbound transitions.
func (m Machine) IsTerminal(status order.Status) bool {
	return len(m.AllowedTransitions(status)) == 0
}

// AuditAction returns the audit label of the rule covering (from, to).
// The second return is false when no rule covers the pair. Pure: identical
// inputs always yield identical output.
func (m Machine) AuditAction(from, to order.Status) (string, bool) {
	rule, ok := m.index[transitionKey{from: from, to: to}]
	if !ok {
		return "", false
	}
	return rule.AuditAction, true
}

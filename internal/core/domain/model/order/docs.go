// Package order contains the order aggregate and its lifecycle status.
//
// An order moves through a fixed set of statuses from creation at the
// terminal to closing after payment. The aggregate owns its items and
// payments and enforces which mutations are legal in which status; the
// legality of status changes themselves is decided by the lifecycle state
// machine in the services package, which consumes facts derived from this
// aggregate.
package order

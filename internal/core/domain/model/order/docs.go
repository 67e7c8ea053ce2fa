// Package order models the off-chain mirror of an on-chain OTC order.
//
// The package includes:
//   - Order: the aggregate root holding identity, pricing snapshot, status and evidence
//   - Status: the lifecycle state machine and its static transition table
//   - Patch: a parsed, sparse change request against an order
//   - MutationPlan: the ordered field assignments an accepted patch produces
//   - Event: an append-only audit record for every committed change
//
// Lifecycle:
//
//	PENDING ──> ESCROWED ──> DELIVERED ──┬──> COMPLETED
//	   │                                 └──> DISPUTED ──┬──> COMPLETED
//	   └──> CANCELLED                                    └──> CANCELLED
//
// COMPLETED and CANCELLED are terminal. An order never decides on its own who
// may move it; that is the job of services.OrderTransitionAuthority. The
// aggregate only refuses plans that would break its structural invariants.
package order

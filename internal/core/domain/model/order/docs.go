// Package order provides the domain model for book production orders.
//
// The package includes:
//   - BookSpecification: an immutable description of a book run and its derived cost
//   - CoverKind, FinishKind: the binding and paper options that drive pricing
//   - State: the order lifecycle, of which only Pending -> Orchestrated and the
//     Rejected override are driven here
//   - ProductionOrder: the aggregate root tying a specification to a lifecycle
//
// Key business rules:
//   - A specification needs a title, an author, at least one page and at least one copy
//   - The estimated cost is computed once, with exact decimal arithmetic, and is
//     never set independently
//   - An order is orchestrated at most once
//   - An order carries a rejection reason exactly when it is Rejected
//   - Identity and the concurrency version are owned by the repositories
package order

// Package userstore implements the state container behind a user-management
// UI: an ordered user collection with load-lifecycle tracking, uniqueness
// enforcement on create/update, and a derived filtered view.
//
// Responsibilities:
//   - Store owns the authoritative collection, the filter criteria, and the
//     load status; consumers only ever read defensive Snapshot copies.
//   - Source supplies seed records exactly once, the first time Load finds
//     the collection empty. Re-invoking Load is safe and leaves a populated
//     collection untouched.
//   - Create/Update enforce the email-uniqueness invariant and surface the
//     outcome through injected notify.Sinks; rejected operations never
//     mutate state.
//   - Name and role filters are tracked independently and the filtered view
//     is recomputed as their conjunction. Expression filters (Matcher) run
//     arbitrary predicates against each user instead.
//
// Data flow:
//
//	Source -> Store.Load -> Snapshot{Users, Filtered, Status}
//	Draft  -> Store.Create/Update -> notify.Sinks
//
// The view layer is an external collaborator: it triggers Load once on
// mount, dispatches drafts and filter changes, and renders snapshots. It
// holds no business invariants of its own.
package userstore

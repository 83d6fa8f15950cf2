// Package bridge translates widget interaction events into host requests
// and applies the host's decisions to the live store.
//
// # Event Loop
//
// A [Bridge] owns a single event loop started with [Bridge.Run]. Events
// arrive through [Bridge.Submit] in input order and are routed one at a
// time. Gestures that need the host (add, edit, delete) start an
// [Operation]: the host call runs off the loop, and its [Decision] is
// applied back on the loop, so the [store.Store] only ever sees serialized
// mutations.
//
// # Operations
//
// Each operation moves through
//
//	Idle -> Pending -> Committed | Cancelled | TimedOut
//
// While pending it holds keys on the elements it targets. Adds hold the
// shared canvas key, so a stop add and a fare-zone add never race.
// Edge edits and connects hold their endpoint nodes as well. A second
// gesture against a held key fails with [ErrBusy]. A host that never
// answers is cut off after [Options.ResolveTimeout]; the operation resolves
// as TimedOut and the store is left untouched.
//
// # Deletion
//
// Deletes require exactly one selected node or edge. A node delete asks the
// host about the node together with every connected edge, and nothing is
// removed until the host commits. The keyboard path is suppressed while
// [Options.DialogGuard] reports an open dialog.
//
// # Positions
//
// Drag ends and physics stabilization are fire-and-forget: positions are
// stored and reported to the host in order, and [Host.NetworkStabilized]
// fires after the first stabilization only.
package bridge

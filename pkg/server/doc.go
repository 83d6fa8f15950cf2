// Package server exposes station graphs and the event bridge over HTTP.
//
// Each station that receives a request gets a session: a live graph store
// built from the station dataset, a [host.RepositoryHost] that persists
// edits, and a [bridge.Bridge] running its event loop. Sessions live until
// the server is closed.
//
// # Routes
//
//	GET  /healthz                    build info
//	GET  /stations/{id}/graph        live graph (?format=json|geojson|dot|svg|png|pdf)
//	GET  /stations/{id}/options      widget options, backdrop and viewport
//	POST /stations/{id}/events       submit a widget event
//	GET  /stations/{id}/positions    position hints reported by the widget
//
// Events are posted as {"type": "...", "data": {...}} where type is one of
// select, doubleClick, contextClick, edgeDragged, connectNodes,
// deleteSelected, keyDown, dragEnd or stabilized. A dialog event
// ({"shown": true|false}) tells the session a modal dialog is open; keyDown
// deletes are refused with 409 until it closes. Adding ?wait=1 blocks until
// the resulting operation resolves, or answers 504 once the wait timeout
// passes with the operation still pending.
package server

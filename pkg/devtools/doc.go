// Package devtools serves an inspection API for a running minivue app.
//
// Routes, relative to the configured path prefix:
//
//	GET  /tree       HTML of the mounted tree
//	GET  /tree.json  the mounted tree as nested JSON nodes
//	GET  /ws         websocket stream of host operations
//	POST /state      merge a JSON object into the root setup state
//	GET  /metrics    Prometheus metrics
//
// Every read and write of the app runs on the app's scheduler.Loop, so the
// HTTP handlers never touch the tree from their own goroutines.
package devtools

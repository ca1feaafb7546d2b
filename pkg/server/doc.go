// Package server hosts view-tree surfaces over WebSocket.
//
// A producer process connects to /birb/live, introduces itself with a
// hello frame and then streams patch frames. Each connection gets its
// own node registry; the session loop goroutine is the only goroutine
// that touches it, so patches apply strictly in wire order without
// locking. Input events travel the other way: the embedding host calls
// Session.Emit and the encoded event frame is written back to the
// producer.
//
// A patch batch that names an unknown node type is a protocol violation.
// The violation surfaces as a panic inside the backend; the session loop
// recovers it, logs the failure and tears the session down.
package server

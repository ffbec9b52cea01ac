// Package server exposes a viewer session over JSON-RPC 2.0 on stdio.
//
// # Protocol
//
// One request per line on stdin, one response per line on stdout:
//   - initialize: handshake; the result lists the methods below
//   - ping: health check
//   - viewer/open, viewer/state, viewer/input, viewer/event
//   - viewer/render, viewer/sample, viewer/export
//   - ops/list
//
// Decoding runs in the background. When it finishes the server sends a
// viewer/loaded or viewer/failed notification. Completions and requests are
// handled by the same loop, so the viewer is never touched concurrently.
//
// # Error Handling
//
// Errors use the JSON-RPC codes -32601 (unknown method), -32602 (invalid
// params) and -32000 (method failed, e.g. nothing loaded yet). The data field
// carries the Go error string.
//
//	srv := server.New(cfg, viewer.New(cfg, nil, pipeline), op.Builtin())
//	srv.Open(ctx, path)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

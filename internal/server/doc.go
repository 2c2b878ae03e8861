// Package server exposes an editing session over the MCP (Model Context
// Protocol) so an MCP client can drive the editor with tool calls.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Every tool maps onto one session operation. Tools that change the
// current image return its updated info; tools that write a file return
// the path written.
//
// Session:
//   - image_open, image_info, image_reset
//
// Artifacts:
//   - image_save, image_thumbnail, image_convert_format
//
// Geometry:
//   - image_resize, image_crop, image_rotate, image_flip
//
// Tone and colour:
//   - image_adjust, image_filter, image_convert_mode
//
// Drawing:
//   - image_add_text, image_draw_rectangle, image_draw_circle, image_draw_line
//
// Composition:
//   - image_collage
//
// Inspection:
//   - image_sample_color, image_preview
//
// # Session State
//
// A Server owns exactly one session for the lifetime of the process.
// Requests are handled one at a time in arrival order. A tool that fails
// leaves the session as it was before the call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	sess := session.New(session.WithWorkDir(dir))
//	srv := server.New(sess, server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server

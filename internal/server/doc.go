// Package server implements the MCP (Model Context Protocol) server for image
// transformation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the imaging engine
// through the MCP protocol, letting MCP clients resize, rotate and re-encode
// JPEG and PNG files.
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
// Image Information:
//   - image_load: Dimensions, format, MIME type and file size
//   - image_dimensions: Width and height from the header only
//
// Transforms:
//   - image_scale: Fit within a width x height box
//   - image_scale_larger_side: Bound the longer side
//   - image_rotate: Quarter or half turn, written back in place
//
// Encoding:
//   - image_convert: Re-encode as JPEG or PNG
//   - image_encode: Return the encoded image as base64
//   - image_decode_bytes: Decode base64 input and write or return it
//
// # Image Handles
//
// Every tool call loads a fresh handle and releases it before returning.
// Nothing is cached between calls, so a file edited on disk is always
// re-read.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: "Tool execution failed"
//   - data: the error text, which names the engine's error kind
//
// # Usage
//
//	proc := imaging.NewProcessor(opts)
//	srv := server.New(proc)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_scale").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the image into a fresh handle and releases it on return
//  4. Runs the transform and persists or streams the result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Transforms
	case "image_scale":
		return s.handleImageScale(args)
	case "image_scale_larger_side":
		return s.handleImageScaleLargerSide(args)
	case "image_rotate":
		return s.handleImageRotate(args)

	// Encoding
	case "image_convert":
		return s.handleImageConvert(args)
	case "image_encode":
		return s.handleImageEncode(args)
	case "image_decode_bytes":
		return s.handleImageDecodeBytes(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// quality returns q, or the processor default when q is unset.
func (s *Server) quality(q int) int {
	if q == 0 {
		return s.proc.Quality()
	}
	return q
}

// === Result Types ===

// TransformResult reports the outcome of a scale or rotate.
type TransformResult struct {
	// Changed is false when the transform was a no-op and nothing was written.
	Changed bool `json:"changed"`

	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`

	// OutputPath is the file that was written, empty when nothing was.
	OutputPath string `json:"output_path,omitempty"`
}

// EncodeResult carries an encoded image inline.
type EncodeResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64"`
}

func transformResult(im *imaging.Image, changed bool, outputPath string) *TransformResult {
	w, h := im.Size()
	return &TransformResult{
		Changed:    changed,
		Width:      w,
		Height:     h,
		Format:     im.Format().String(),
		OutputPath: outputPath,
	}
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.proc.LoadImageInfo(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(a.Path)
}

// === Transform Handlers ===

type imageScaleArgs struct {
	Path                string `json:"path"`
	Width               int    `json:"width"`
	Height              int    `json:"height"`
	PreserveAspectRatio *bool  `json:"preserve_aspect_ratio"`
	OutputPath          string `json:"output_path"`
	Quality             int    `json:"quality"`
}

func (s *Server) handleImageScale(args json.RawMessage) (interface{}, error) {
	var a imageScaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	preserve := true
	if a.PreserveAspectRatio != nil {
		preserve = *a.PreserveAspectRatio
	}

	im, err := s.proc.LoadFromPath(a.Path)
	if err != nil {
		return nil, err
	}
	defer im.Release()

	scaled, err := im.Scale(a.Width, a.Height, preserve)
	if err != nil {
		return nil, err
	}
	return s.persist(im, scaled, a.Path, a.OutputPath, a.Quality)
}

type imageScaleLargerSideArgs struct {
	Path       string `json:"path"`
	MaxSize    int    `json:"max_size"`
	OutputPath string `json:"output_path"`
	Quality    int    `json:"quality"`
}

func (s *Server) handleImageScaleLargerSide(args json.RawMessage) (interface{}, error) {
	var a imageScaleLargerSideArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	im, err := s.proc.LoadFromPath(a.Path)
	if err != nil {
		return nil, err
	}
	defer im.Release()

	scaled, err := im.ScaleLargerSide(a.MaxSize)
	if err != nil {
		return nil, err
	}
	return s.persist(im, scaled, a.Path, a.OutputPath, a.Quality)
}

// persist writes im when it changed or when a distinct output path was
// requested. An unchanged image targeted at its own source is left alone.
func (s *Server) persist(im *imaging.Image, changed bool, src, dst string, quality int) (*TransformResult, error) {
	if dst == "" {
		dst = src
	}
	if !changed && dst == src {
		return transformResult(im, false, ""), nil
	}
	if err := im.EncodeToFile(dst, s.quality(quality)); err != nil {
		return nil, err
	}
	return transformResult(im, changed, dst), nil
}

type imageRotateArgs struct {
	Path      string `json:"path"`
	Direction string `json:"direction"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Direction == "" {
		a.Direction = string(imaging.RotateRight)
	}
	dir, err := imaging.ParseDirection(a.Direction)
	if err != nil {
		return nil, err
	}

	im, err := s.proc.LoadFromPath(a.Path)
	if err != nil {
		return nil, err
	}
	defer im.Release()

	rotated, err := im.Rotate(dir)
	if err != nil {
		return nil, err
	}
	return transformResult(im, rotated, a.Path), nil
}

// === Encoding Handlers ===

type imageConvertArgs struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
	Quality    int    `json:"quality"`
}

func (s *Server) handleImageConvert(args json.RawMessage) (interface{}, error) {
	var a imageConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	im, err := s.proc.LoadFromPath(a.Path)
	if err != nil {
		return nil, err
	}
	defer im.Release()

	if err := im.SetFormat(a.Format); err != nil {
		return nil, err
	}
	out := a.OutputPath
	if out == "" {
		out = a.Path
	}
	if err := im.EncodeToFile(out, s.quality(a.Quality)); err != nil {
		return nil, err
	}
	return transformResult(im, true, out), nil
}

type imageEncodeArgs struct {
	Path    string `json:"path"`
	Format  string `json:"format"`
	MaxSize int    `json:"max_size"`
	Quality int    `json:"quality"`
}

func (s *Server) handleImageEncode(args json.RawMessage) (interface{}, error) {
	var a imageEncodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	im, err := s.proc.LoadFromPath(a.Path)
	if err != nil {
		return nil, err
	}
	defer im.Release()

	return s.encodeInline(im, a.Format, a.MaxSize, a.Quality)
}

type imageDecodeBytesArgs struct {
	DataBase64 string `json:"data_base64"`
	OutputPath string `json:"output_path"`
	Format     string `json:"format"`
	MaxSize    int    `json:"max_size"`
	Quality    int    `json:"quality"`
}

// handleImageDecodeBytes decodes an inline image. With an output path the
// result is written there; without one it is returned inline like image_encode.
func (s *Server) handleImageDecodeBytes(args json.RawMessage) (interface{}, error) {
	var a imageDecodeBytesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(a.DataBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid data_base64: %w", err)
	}

	im, err := s.proc.LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	defer im.Release()

	if a.OutputPath == "" {
		return s.encodeInline(im, a.Format, a.MaxSize, a.Quality)
	}

	if a.Format != "" {
		if err := im.SetFormat(a.Format); err != nil {
			return nil, err
		}
	}
	scaled := false
	if a.MaxSize > 0 {
		if scaled, err = im.ScaleLargerSide(a.MaxSize); err != nil {
			return nil, err
		}
	}
	if err := im.EncodeToFile(a.OutputPath, s.quality(a.Quality)); err != nil {
		return nil, err
	}
	return transformResult(im, scaled, a.OutputPath), nil
}

// encodeInline applies the optional format override and size bound, then
// encodes im into a base64 payload.
func (s *Server) encodeInline(im *imaging.Image, format string, maxSize, quality int) (*EncodeResult, error) {
	if format != "" {
		if err := im.SetFormat(format); err != nil {
			return nil, err
		}
	}
	if maxSize > 0 {
		if _, err := im.ScaleLargerSide(maxSize); err != nil {
			return nil, err
		}
	}

	mime, err := im.MimeType()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := im.EncodeToStream(&buf, s.quality(quality)); err != nil {
		return nil, err
	}

	w, h := im.Size()
	return &EncodeResult{
		Width:       w,
		Height:      h,
		MimeType:    mime,
		SizeBytes:   buf.Len(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

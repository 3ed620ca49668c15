package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional destination file. Defaults to overwriting the source path",
	}
}

func qualityProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "JPEG quality 1-100. Ignored for PNG. Default 95",
		"default":     95,
		"minimum":     1,
		"maximum":     100,
	}
}

func formatProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        []string{"jpeg", "png"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, MIME type and file size. Only JPEG and PNG files are accepted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file without decoding its pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Transforms
		{
			Name:        "image_scale",
			Description: "Downscale an image to fit within width x height. Images that already fit are left untouched. With preserve_aspect_ratio false the image is stretched to exactly width x height.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum width in pixels",
						"minimum":     1,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum height in pixels",
						"minimum":     1,
					},
					"preserve_aspect_ratio": map[string]interface{}{
						"type":        "boolean",
						"description": "Keep the width/height ratio. Default true",
						"default":     true,
					},
					"output_path": outputPathProperty(),
					"quality":     qualityProperty(),
				},
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "image_scale_larger_side",
			Description: "Downscale an image so its longer side is at most max_size pixels, keeping the aspect ratio. Square images are bounded by height.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Upper bound for the longer side in pixels",
						"minimum":     1,
					},
					"output_path": outputPathProperty(),
					"quality":     qualityProperty(),
				},
				"required": []string{"path", "max_size"},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image by a quarter or half turn and write it back over the source file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"direction": map[string]interface{}{
						"type":        "string",
						"description": "left (90° counter-clockwise), right (90° clockwise) or flip (180°). Default right",
						"enum":        []string{"left", "right", "flip"},
						"default":     "right",
					},
				},
				"required": []string{"path"},
			},
		},

		// Encoding
		{
			Name:        "image_convert",
			Description: "Re-encode an image as JPEG or PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"format":      formatProperty("Target format"),
					"output_path": outputPathProperty(),
					"quality":     qualityProperty(),
				},
				"required": []string{"path", "format"},
			},
		},
		{
			Name:        "image_encode",
			Description: "Encode an image and return it as base64 with its MIME type, optionally converting format and bounding the longer side first. The file is not modified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"format": formatProperty("Optional output format. Defaults to the source format"),
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Optional upper bound for the longer side in pixels",
					},
					"quality": qualityProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_decode_bytes",
			Description: "Decode a base64-encoded image (JPEG, PNG, GIF, BMP, TIFF or WebP). The result is PNG unless format says otherwise. It is written to output_path when given, otherwise returned as base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image bytes",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional destination file",
					},
					"format": formatProperty("Optional output format. Default png"),
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Optional upper bound for the longer side in pixels",
					},
					"quality": qualityProperty(),
				},
				"required": []string{"data_base64"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

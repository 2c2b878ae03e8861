package server

import "github.com/ironsheep/image-editor/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func object(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func strokeProperties(props map[string]interface{}) map[string]interface{} {
	props["color"] = prop("string", `Stroke colour as "r,g,b", "#rrggbb" or a name. Default black`)
	props["width"] = prop("integer", "Stroke width in pixels, growing inward. Default 1")
	return props
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	modes := enumStrings(imaging.Modes)
	dims := enumStrings(imaging.Dimensions)

	return []Tool{
		// Session
		{
			Name:        "image_open",
			Description: "Open an image file. It becomes both the current image and the original that image_reset returns to.",
			InputSchema: object(map[string]interface{}{
				"path": prop("string", "Path to the image file"),
			}, "path"),
		},
		{
			Name:        "image_info",
			Description: "Get the width, height, colour mode, source format and name of the current image.",
			InputSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "image_reset",
			Description: "Discard every edit and return to the image as it was opened (or as the last collage created it).",
			InputSchema: object(map[string]interface{}{}),
		},

		// Artifacts
		{
			Name:        "image_save",
			Description: "Write the current image to disk. Without a path it is saved as <name>_edited.<ext> in the work directory. The format follows the file extension.",
			InputSchema: object(map[string]interface{}{
				"path": prop("string", "Output path. Optional"),
			}),
		},
		{
			Name:        "image_thumbnail",
			Description: "Write a thumbnail that fits within the given bounds, keeping aspect ratio, as <name>_thumb.<ext>. The current image is not changed.",
			InputSchema: object(map[string]interface{}{
				"max_width":  prop("integer", "Maximum width in pixels. Default 128"),
				"max_height": prop("integer", "Maximum height in pixels. Default 128"),
			}),
		},
		{
			Name:        "image_convert_format",
			Description: "Write the current image in another format as <name>.<format>. The current image is not changed.",
			InputSchema: object(map[string]interface{}{
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"jpg", "jpeg", "png", "bmp", "gif", "tiff"},
					"description": "Target file extension",
				},
			}, "format"),
		},

		// Geometry
		{
			Name:        "image_resize",
			Description: "Resize the current image to exactly width x height, ignoring aspect ratio.",
			InputSchema: object(map[string]interface{}{
				"width":  prop("integer", "New width in pixels (at least 1)"),
				"height": prop("integer", "New height in pixels (at least 1)"),
			}, "width", "height"),
		},
		{
			Name:        "image_crop",
			Description: "Crop the current image to a box. Right and bottom are exclusive; parts of the box past the image edge are filled with black (transparent for RGBA).",
			InputSchema: object(map[string]interface{}{
				"left":   prop("integer", "Left edge X coordinate (0-based)"),
				"top":    prop("integer", "Top edge Y coordinate (0-based)"),
				"right":  prop("integer", "Right edge X coordinate (exclusive)"),
				"bottom": prop("integer", "Bottom edge Y coordinate (exclusive)"),
			}, "left", "top", "right", "bottom"),
		},
		{
			Name:        "image_rotate",
			Description: "Rotate the current image counter-clockwise by the given degrees. The canvas grows to hold the whole result.",
			InputSchema: object(map[string]interface{}{
				"degrees": prop("number", "Angle in degrees, counter-clockwise"),
			}, "degrees"),
		},
		{
			Name:        "image_flip",
			Description: "Mirror the current image.",
			InputSchema: object(map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"horizontal", "vertical"},
					"description": "horizontal mirrors left to right, vertical mirrors top to bottom",
				},
			}, "direction"),
		},

		// Tone and colour
		{
			Name:        "image_adjust",
			Description: "Adjust brightness, contrast, colour saturation or sharpness. A factor of 1.0 leaves the image unchanged, 0.0 gives the degenerate image (black, flat gray, grayscale, blurred).",
			InputSchema: object(map[string]interface{}{
				"dimension": map[string]interface{}{
					"type":        "string",
					"enum":        dims,
					"description": "What to adjust",
				},
				"factor": prop("number", "Enhancement factor, 0.0 or more; 1.0 is the original"),
			}, "dimension", "factor"),
		},
		{
			Name:        "image_filter",
			Description: "Apply a fixed convolution filter to the current image.",
			InputSchema: object(map[string]interface{}{
				"filter": map[string]interface{}{
					"type":        "string",
					"enum":        imaging.FilterNames(),
					"description": "Filter name (case-insensitive)",
				},
			}, "filter"),
		},
		{
			Name:        "image_convert_mode",
			Description: "Convert the current image to another colour mode. L is grayscale.",
			InputSchema: object(map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        modes,
					"description": "Target colour mode",
				},
			}, "mode"),
		},

		// Drawing
		{
			Name:        "image_add_text",
			Description: "Draw text with its top-left corner at (x, y). When the configured font is unavailable a small bitmap font is used and the result reports font \"fallback\".",
			InputSchema: object(map[string]interface{}{
				"text":  prop("string", "Text to draw; \\n starts a new line"),
				"x":     prop("integer", "Left edge X coordinate"),
				"y":     prop("integer", "Top edge Y coordinate"),
				"size":  prop("number", "Font size in pixels. Default 40"),
				"color": prop("string", `Text colour as "r,g,b", "#rrggbb" or a name. Default black`),
			}, "text", "x", "y"),
		},
		{
			Name:        "image_draw_rectangle",
			Description: "Outline a rectangle. Both corners are inclusive.",
			InputSchema: object(strokeProperties(map[string]interface{}{
				"x1": prop("integer", "Top-left X"),
				"y1": prop("integer", "Top-left Y"),
				"x2": prop("integer", "Bottom-right X"),
				"y2": prop("integer", "Bottom-right Y"),
			}), "x1", "y1", "x2", "y2"),
		},
		{
			Name:        "image_draw_circle",
			Description: "Outline a circle around a center point.",
			InputSchema: object(strokeProperties(map[string]interface{}{
				"x":      prop("integer", "Center X"),
				"y":      prop("integer", "Center Y"),
				"radius": prop("integer", "Radius in pixels, 0 or more"),
			}), "x", "y", "radius"),
		},
		{
			Name:        "image_draw_line",
			Description: "Draw a straight line between two points, both included.",
			InputSchema: object(strokeProperties(map[string]interface{}{
				"x1": prop("integer", "Start X"),
				"y1": prop("integer", "Start Y"),
				"x2": prop("integer", "End X"),
				"y2": prop("integer", "End Y"),
			}), "x1", "y1", "x2", "y2"),
		},

		// Composition
		{
			Name:        "image_collage",
			Description: "Tile several images into a grid of equal cells on a white background. The collage replaces both the current and the original image. Paths that cannot be opened are skipped and reported.",
			InputSchema: object(map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Image paths in placement order",
				},
				"columns": prop("integer", "Cells per row. Default 2"),
				"padding": prop("integer", "Gap in pixels around and between cells. Default 10"),
			}, "paths"),
		},

		// Inspection
		{
			Name:        "image_sample_color",
			Description: "Get the exact colour of one pixel of the current image as hex, RGB, alpha and HSL.",
			InputSchema: object(map[string]interface{}{
				"x": prop("integer", "X coordinate (0-based, from left)"),
				"y": prop("integer", "Y coordinate (0-based, from top)"),
			}, "x", "y"),
		},
		{
			Name:        "image_preview",
			Description: "Render the current image as a base64-encoded PNG, optionally with a coordinate grid labelled in image pixels. Use it to check an edit or to pick coordinates for crop and drawing tools.",
			InputSchema: object(map[string]interface{}{
				"max_size":     prop("integer", "Longest side of the preview; 0 keeps full size. Default 1024"),
				"grid_spacing": prop("integer", "Grid line spacing in image pixels; 0 draws no grid. Default 0"),
				"grid_labels":  prop("boolean", "Label grid intersections with coordinates. Default true"),
				"grid_color":   prop("string", "Grid line colour. Default semi-transparent red"),
			}),
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

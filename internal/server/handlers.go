package server

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/image-editor/internal/collage"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_open", "image_crop").
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
// A failed tool leaves the session exactly as it was.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
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
//  3. Calls exactly one session operation
//  4. Returns the updated image info or the artifact produced
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Session
	case "image_open":
		return s.handleImageOpen(args)
	case "image_info":
		return s.handleImageInfo()
	case "image_reset":
		return s.handleImageReset()

	// Artifacts
	case "image_save":
		return s.handleImageSave(args)
	case "image_thumbnail":
		return s.handleImageThumbnail(args)
	case "image_convert_format":
		return s.handleImageConvertFormat(args)

	// Geometry
	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_flip":
		return s.handleImageFlip(args)

	// Tone and colour
	case "image_adjust":
		return s.handleImageAdjust(args)
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_convert_mode":
		return s.handleImageConvertMode(args)

	// Drawing
	case "image_add_text":
		return s.handleImageAddText(args)
	case "image_draw_rectangle":
		return s.handleImageDrawRectangle(args)
	case "image_draw_circle":
		return s.handleImageDrawCircle(args)
	case "image_draw_line":
		return s.handleImageDrawLine(args)

	// Composition
	case "image_collage":
		return s.handleImageCollage(args)

	// Inspection
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_preview":
		return s.handleImagePreview(args)

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

// imageResult is returned by every tool that changes the current image.
type imageResult struct {
	Operation string        `json:"operation"`
	Image     *imaging.Info `json:"image"`
}

// artifactResult is returned by tools that write a file.
type artifactResult struct {
	Path  string        `json:"path"`
	Image *imaging.Info `json:"image"`
}

func (s *Server) updated(op string, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	info, err := s.session.Info()
	if err != nil {
		return nil, err
	}
	return &imageResult{Operation: op, Image: info}, nil
}

func (s *Server) artifact(path string, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	info, err := s.session.Info()
	if err != nil {
		return nil, err
	}
	return &artifactResult{Path: path, Image: info}, nil
}

// === Session Handlers ===

type imageOpenArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageOpen(args json.RawMessage) (interface{}, error) {
	var a imageOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.session.Open(a.Path)
}

func (s *Server) handleImageInfo() (interface{}, error) {
	return s.session.Info()
}

func (s *Server) handleImageReset() (interface{}, error) {
	return s.updated("reset", s.session.Reset())
}

// === Artifact Handlers ===

type imageSaveArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.artifact(s.session.Save(a.Path))
}

type imageThumbnailArgs struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

func (s *Server) handleImageThumbnail(args json.RawMessage) (interface{}, error) {
	var a imageThumbnailArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = s.defaults.ThumbnailWidth
	}
	if a.MaxHeight == 0 {
		a.MaxHeight = s.defaults.ThumbnailHeight
	}
	return s.artifact(s.session.CreateThumbnail(a.MaxWidth, a.MaxHeight))
}

type imageConvertFormatArgs struct {
	Format string `json:"format"`
}

func (s *Server) handleImageConvertFormat(args json.RawMessage) (interface{}, error) {
	var a imageConvertFormatArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.artifact(s.session.ConvertFormat(a.Format))
}

// === Geometry Handlers ===

type imageResizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.updated("resize", s.session.Resize(a.Width, a.Height))
}

type imageCropArgs struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.updated("crop", s.session.Crop(a.Left, a.Top, a.Right, a.Bottom))
}

type imageRotateArgs struct {
	Degrees float64 `json:"degrees"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.updated("rotate", s.session.Rotate(a.Degrees))
}

type imageFlipArgs struct {
	Direction string `json:"direction"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	axis, err := imaging.ParseAxis(a.Direction)
	if err != nil {
		return nil, err
	}
	return s.updated("flip "+axis.String(), s.session.Flip(axis))
}

// === Tone and Colour Handlers ===

type imageAdjustArgs struct {
	Dimension string   `json:"dimension"`
	Factor    *float64 `json:"factor"`
}

func (s *Server) handleImageAdjust(args json.RawMessage) (interface{}, error) {
	var a imageAdjustArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Factor == nil {
		return nil, fmt.Errorf("factor is required")
	}
	dim, err := imaging.ParseDimension(a.Dimension)
	if err != nil {
		return nil, err
	}
	return s.updated("adjust "+string(dim), s.session.Adjust(dim, *a.Factor))
}

type imageFilterArgs struct {
	Filter string `json:"filter"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.updated("filter", s.session.ApplyFilter(a.Filter))
}

type imageConvertModeArgs struct {
	Mode string `json:"mode"`
}

func (s *Server) handleImageConvertMode(args json.RawMessage) (interface{}, error) {
	var a imageConvertModeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.updated("convert mode", s.session.ConvertMode(a.Mode))
}

// === Drawing Handlers ===

type imageAddTextArgs struct {
	Text  string  `json:"text"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

type addTextResult struct {
	imageResult
	Font string `json:"font"`
}

func (s *Server) handleImageAddText(args json.RawMessage) (interface{}, error) {
	var a imageAddTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Size == 0 {
		a.Size = s.defaults.FontSize
	}
	c, err := imaging.ParseColor(a.Color)
	if err != nil {
		return nil, err
	}

	kind, err := s.session.AddText(a.Text, image.Pt(a.X, a.Y), a.Size, c)
	res, err := s.updated("add text", err)
	if err != nil {
		return nil, err
	}
	return &addTextResult{imageResult: *res.(*imageResult), Font: kind.String()}, nil
}

type strokeArgs struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

// stroke parses the colour (default black) and width (default 1).
func (a strokeArgs) stroke() (color.NRGBA, int, error) {
	c, err := imaging.ParseColor(a.Color)
	if err != nil {
		return color.NRGBA{}, 0, err
	}
	if a.Width == 0 {
		a.Width = 1
	}
	return c, a.Width, nil
}

type imageDrawRectangleArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
	strokeArgs
}

func (s *Server) handleImageDrawRectangle(args json.RawMessage) (interface{}, error) {
	var a imageDrawRectangleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, width, err := a.stroke()
	if err != nil {
		return nil, err
	}
	box := imaging.Box{X0: a.X1, Y0: a.Y1, X1: a.X2, Y1: a.Y2}
	return s.updated("draw rectangle", s.session.DrawRectangle(box, c, width))
}

type imageDrawCircleArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
	strokeArgs
}

func (s *Server) handleImageDrawCircle(args json.RawMessage) (interface{}, error) {
	var a imageDrawCircleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, width, err := a.stroke()
	if err != nil {
		return nil, err
	}
	return s.updated("draw circle", s.session.DrawCircle(image.Pt(a.X, a.Y), a.Radius, c, width))
}

type imageDrawLineArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
	strokeArgs
}

func (s *Server) handleImageDrawLine(args json.RawMessage) (interface{}, error) {
	var a imageDrawLineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, width, err := a.stroke()
	if err != nil {
		return nil, err
	}
	return s.updated("draw line", s.session.DrawLine(image.Pt(a.X1, a.Y1), image.Pt(a.X2, a.Y2), c, width))
}

// === Composition Handlers ===

type imageCollageArgs struct {
	Paths   []string `json:"paths"`
	Columns int      `json:"columns"`
	Padding *int     `json:"padding"`
}

type collageSkip struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type collageResult struct {
	Image   *imaging.Info   `json:"image"`
	Layout  *collage.Layout `json:"layout"`
	Skipped []collageSkip   `json:"skipped,omitempty"`
}

func (s *Server) handleImageCollage(args json.RawMessage) (interface{}, error) {
	var a imageCollageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	spec := collage.Spec{Paths: a.Paths, Columns: a.Columns, Padding: s.defaults.CollagePadding}
	if spec.Columns == 0 {
		spec.Columns = s.defaults.CollageColumns
	}
	if a.Padding != nil {
		spec.Padding = *a.Padding
	}

	res, err := s.session.CreateCollage(spec)
	if err != nil {
		return nil, err
	}
	info, err := s.session.Info()
	if err != nil {
		return nil, err
	}

	out := &collageResult{Image: info, Layout: res.Layout}
	for _, skip := range res.Skipped {
		out.Skipped = append(out.Skipped, collageSkip{Path: skip.Path, Error: skip.Err.Error()})
	}
	return out, nil
}

// === Inspection Handlers ===

type imageSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.session.SampleColor(a.X, a.Y)
}

type imagePreviewArgs struct {
	MaxSize     *int   `json:"max_size"`
	GridSpacing int    `json:"grid_spacing"`
	GridLabels  *bool  `json:"grid_labels"`
	GridColor   string `json:"grid_color"`
}

// defaultPreviewSize keeps previews small enough for a client context.
const defaultPreviewSize = 1024

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := imaging.PreviewOptions{
		MaxSize:     defaultPreviewSize,
		GridSpacing: a.GridSpacing,
		GridLabels:  true,
	}
	if a.MaxSize != nil {
		opts.MaxSize = *a.MaxSize
	}
	if a.GridLabels != nil {
		opts.GridLabels = *a.GridLabels
	}
	if a.GridColor != "" {
		c, err := imaging.ParseColor(a.GridColor)
		if err != nil {
			return nil, err
		}
		opts.GridColor = c
	}
	return s.session.Preview(opts)
}

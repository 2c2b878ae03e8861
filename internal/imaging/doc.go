// Package imaging is the raster layer of the editor: decoding, encoding and
// every pixel operation the editing session dispatches to.
//
// An Image pairs a decoded pixel buffer with its colour Mode. Operations are
// pure functions that return a new Image in the same mode as their input;
// only Convert changes the mode. Nothing in this package mutates an Image in
// place, so callers may keep earlier values around (the session keeps the
// original for reset).
//
// # Coordinate System
//
// All pixel coordinates are 0-based from the top-left corner, X increasing
// rightward and Y downward.
//   - Crop takes (left, top, right, bottom) with right and bottom exclusive.
//   - Shape boxes (Box) are inclusive on both corners.
//
// # Modes
//
// The supported modes are L, RGB, RGBA, CMYK, 1 and P. Filters and
// enhancements need continuous tone and refuse 1 and P with ErrPaletteMode.
// Encoders refuse modes their format cannot store: RGBA and P cannot be
// written as JPEG, and CMYK can only be written as JPEG or TIFF.
//
// # Fonts
//
// ResolveFont never fails. When the requested TrueType font cannot be found
// or parsed it returns the fixed 7x13 bitmap font tagged FontFallback, which
// ignores the requested size.
//
// # Errors
//
// Invalid parameters wrap one of the Err* sentinels; codec failures are
// reported as *DecodeError or *EncodeError carrying the path.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package imaging

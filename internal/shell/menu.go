package shell

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/ironsheep/image-editor/internal/collage"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// menuItem is one numbered entry. run returns only input errors; session
// failures are reported to the user and the loop continues.
type menuItem struct {
	key   string
	label string
	run   func(*Shell) error
}

var menu = []menuItem{
	{"1", "Open image", (*Shell).openImage},
	{"2", "Display current image", (*Shell).displayImage},
	{"3", "Save image", (*Shell).saveImage},
	{"4", "Resize image", (*Shell).resizeImage},
	{"5", "Crop image", (*Shell).cropImage},
	{"6", "Rotate image", (*Shell).rotateImage},
	{"7", "Flip image", (*Shell).flipImage},
	{"8", "Adjust brightness", adjust(imaging.Brightness, "brightness")},
	{"9", "Adjust contrast", adjust(imaging.Contrast, "contrast")},
	{"10", "Adjust color saturation", adjust(imaging.Color, "color")},
	{"11", "Adjust sharpness", adjust(imaging.Sharpness, "sharpness")},
	{"12", "Apply filter", (*Shell).applyFilter},
	{"13", "Convert to grayscale", (*Shell).grayscale},
	{"14", "Add text", (*Shell).addText},
	{"15", "Draw rectangle", (*Shell).drawRectangle},
	{"16", "Draw circle", (*Shell).drawCircle},
	{"17", "Create thumbnail", (*Shell).thumbnail},
	{"18", "Create collage", (*Shell).createCollage},
	{"19", "Convert format", (*Shell).convertFormat},
	{"20", "Reset to original", (*Shell).reset},
}

func lookup(choice string) (menuItem, bool) {
	for _, item := range menu {
		if item.key == choice {
			return item, true
		}
	}
	return menuItem{}, false
}

func (sh *Shell) openImage() error {
	path, err := sh.readLine("Enter the path to the image: ")
	if err != nil {
		return err
	}
	info, err := sh.session.Open(path)
	if err != nil {
		sh.report(err, "")
		return nil
	}
	sh.report(nil, "Opened %s", info)
	return nil
}

func (sh *Shell) displayImage() error {
	info, err := sh.session.Info()
	if err != nil {
		sh.report(err, "")
		return nil
	}
	sh.report(nil, "Current image %s", info)
	return nil
}

func (sh *Shell) saveImage() error {
	path, err := sh.readLine("Enter output path (or press Enter for default): ")
	if err != nil {
		return err
	}
	saved, err := sh.session.Save(path)
	sh.report(err, "Image saved to %s", saved)
	return nil
}

func (sh *Shell) resizeImage() error {
	width, err := sh.promptInt("Enter width: ", nil)
	if err != nil {
		return err
	}
	height, err := sh.promptInt("Enter height: ", nil)
	if err != nil {
		return err
	}
	sh.report(sh.session.Resize(width, height), "Image resized to %dx%d", width, height)
	return nil
}

func (sh *Shell) cropImage() error {
	var coords [4]int
	for i, name := range []string{"left", "top", "right", "bottom"} {
		v, err := sh.promptInt("Enter "+name+" coordinate: ", nil)
		if err != nil {
			return err
		}
		coords[i] = v
	}
	sh.report(sh.session.Crop(coords[0], coords[1], coords[2], coords[3]),
		"Image cropped to (%d,%d)-(%d,%d)", coords[0], coords[1], coords[2], coords[3])
	return nil
}

func (sh *Shell) rotateImage() error {
	degrees, err := sh.promptFloat("Enter degrees to rotate: ", nil)
	if err != nil {
		return err
	}
	sh.report(sh.session.Rotate(degrees), "Image rotated by %g degrees", degrees)
	return nil
}

func (sh *Shell) flipImage() error {
	for {
		line, err := sh.readLine("Enter flip direction (horizontal/vertical): ")
		if err != nil {
			return err
		}
		axis, err := imaging.ParseAxis(line)
		if err != nil {
			sh.println(sh.dim.Render("Invalid direction. Use 'horizontal' or 'vertical'."))
			continue
		}
		sh.report(sh.session.Flip(axis), "Image flipped %s", axis)
		return nil
	}
}

func adjust(dim imaging.Dimension, name string) func(*Shell) error {
	return func(sh *Shell) error {
		factor, err := sh.promptFloat(fmt.Sprintf("Enter %s factor (0.0-2.0, 1.0 is original): ", name), nil)
		if err != nil {
			return err
		}
		sh.report(sh.session.Adjust(dim, factor), "Adjusted %s by factor %g", name, factor)
		return nil
	}
}

func (sh *Shell) applyFilter() error {
	sh.println("Available filters: " + strings.Join(imaging.FilterNames(), ", "))
	name, err := sh.readLine("Enter filter name: ")
	if err != nil {
		return err
	}
	sh.report(sh.session.ApplyFilter(name), "Applied %s filter", strings.ToLower(name))
	return nil
}

func (sh *Shell) grayscale() error {
	sh.report(sh.session.ConvertMode(string(imaging.ModeL)), "Converted to grayscale")
	return nil
}

func (sh *Shell) addText() error {
	text, err := sh.readLine("Enter text: ")
	if err != nil {
		return err
	}
	pos, err := sh.promptPoint("x position", "y position")
	if err != nil {
		return err
	}
	size, err := sh.promptFloat(fmt.Sprintf("Enter font size (default %g): ", sh.defaults.FontSize), ptr(sh.defaults.FontSize))
	if err != nil {
		return err
	}
	c, err := sh.promptColor("Enter RGB color (comma-separated, default 0,0,0): ")
	if err != nil {
		return err
	}

	kind, err := sh.session.AddText(text, pos, size, c)
	if err == nil && kind == imaging.FontFallback {
		sh.println(sh.dim.Render("Font not available, used the built-in bitmap font"))
	}
	sh.report(err, "Added text at %d,%d", pos.X, pos.Y)
	return nil
}

func (sh *Shell) drawRectangle() error {
	from, err := sh.promptPoint("top-left x", "top-left y")
	if err != nil {
		return err
	}
	to, err := sh.promptPoint("bottom-right x", "bottom-right y")
	if err != nil {
		return err
	}
	c, width, err := sh.promptStroke()
	if err != nil {
		return err
	}
	box := imaging.Box{X0: from.X, Y0: from.Y, X1: to.X, Y1: to.Y}
	sh.report(sh.session.DrawRectangle(box, c, width), "Drew rectangle %s", box)
	return nil
}

func (sh *Shell) drawCircle() error {
	center, err := sh.promptPoint("center x", "center y")
	if err != nil {
		return err
	}
	radius, err := sh.promptInt("Enter radius: ", nil)
	if err != nil {
		return err
	}
	c, width, err := sh.promptStroke()
	if err != nil {
		return err
	}
	sh.report(sh.session.DrawCircle(center, radius, c, width), "Drew circle at %d,%d with radius %d", center.X, center.Y, radius)
	return nil
}

func (sh *Shell) thumbnail() error {
	w, h := sh.defaults.ThumbnailWidth, sh.defaults.ThumbnailHeight
	width, err := sh.promptInt(fmt.Sprintf("Enter thumbnail width (default %d): ", w), &w)
	if err != nil {
		return err
	}
	height, err := sh.promptInt(fmt.Sprintf("Enter thumbnail height (default %d): ", h), &h)
	if err != nil {
		return err
	}
	path, err := sh.session.CreateThumbnail(width, height)
	sh.report(err, "Thumbnail saved to %s", path)
	return nil
}

func (sh *Shell) createCollage() error {
	count, err := sh.promptInt("Enter number of images for collage: ", nil)
	if err != nil {
		return err
	}
	paths := make([]string, 0, max(count, 0))
	for i := range count {
		path, err := sh.readLine(fmt.Sprintf("Enter path for image %d: ", i+1))
		if err != nil {
			return err
		}
		paths = append(paths, path)
	}
	cols := sh.defaults.CollageColumns
	cols, err = sh.promptInt(fmt.Sprintf("Enter number of columns (default %d): ", cols), &cols)
	if err != nil {
		return err
	}

	result, err := sh.session.CreateCollage(collage.Spec{
		Paths:   paths,
		Columns: cols,
		Padding: sh.defaults.CollagePadding,
	})
	if err != nil {
		sh.report(err, "")
		return nil
	}
	for _, skip := range result.Skipped {
		sh.println(sh.dim.Render(fmt.Sprintf("Skipped %s: %v", skip.Path, skip.Err)))
	}
	sh.report(nil, "Collage created: %dx%d, %d columns x %d rows",
		result.Layout.Width, result.Layout.Height, result.Layout.Columns, result.Layout.Rows)
	return nil
}

func (sh *Shell) convertFormat() error {
	ext, err := sh.readLine("Enter new format (jpg, png, etc.): ")
	if err != nil {
		return err
	}
	path, err := sh.session.ConvertFormat(ext)
	sh.report(err, "Image converted and saved to %s", path)
	return nil
}

func (sh *Shell) reset() error {
	sh.report(sh.session.Reset(), "Image reset to original")
	return nil
}

func (sh *Shell) promptPoint(xName, yName string) (image.Point, error) {
	x, err := sh.promptInt("Enter "+xName+": ", nil)
	if err != nil {
		return image.Point{}, err
	}
	y, err := sh.promptInt("Enter "+yName+": ", nil)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

func (sh *Shell) promptStroke() (color.NRGBA, int, error) {
	c, err := sh.promptColor("Enter RGB color (comma-separated, default 0,0,0): ")
	if err != nil {
		return color.NRGBA{}, 0, err
	}
	width, err := sh.promptInt("Enter line width (default 1): ", ptr(1))
	if err != nil {
		return color.NRGBA{}, 0, err
	}
	return c, width, nil
}

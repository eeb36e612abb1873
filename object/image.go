package object

import (
	"fmt"
	"image"
	"image/color"

	"github.com/deepnoodle-ai/screenscript/types"
)

// Color wraps an RGBA color.
type Color struct {
	value color.RGBA
}

// NewColor returns a Color.
func NewColor(value color.RGBA) *Color {
	return &Color{value: value}
}

func (c *Color) Type() types.Type { return types.Color }

func (c *Color) Value() color.RGBA { return c.value }

func (c *Color) Inspect() string {
	v := c.value
	return fmt.Sprintf("#%02X%02X%02X%02X", v.R, v.G, v.B, v.A)
}

func (c *Color) String() string { return c.Inspect() }

func (c *Color) Interface() any { return c.value }

func (c *Color) HashKey() HashKey {
	return HashKey{Type: types.Color, Value: c.Inspect()}
}

func (c *Color) Equals(other Object) bool {
	o, ok := other.(*Color)
	return ok && c.value == o.value
}

// Image wraps a decoded image. Images are never modified in place.
type Image struct {
	value image.Image
	name  string
}

// NewImage returns an Image. The name records where the image came from and
// may be empty.
func NewImage(value image.Image, name string) *Image {
	return &Image{value: value, name: name}
}

func (i *Image) Type() types.Type { return types.Image }

func (i *Image) Value() image.Image { return i.value }

// Name returns the source the image was loaded from.
func (i *Image) Name() string { return i.name }

func (i *Image) Inspect() string {
	b := i.value.Bounds()
	return fmt.Sprintf("image(%dx%d)", b.Dx(), b.Dy())
}

func (i *Image) String() string { return i.Inspect() }

func (i *Image) Interface() any { return i.value }

func (i *Image) Equals(other Object) bool {
	o, ok := other.(*Image)
	return ok && i.value == o.value
}

package host

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/deepnoodle-ai/screenscript/object"
)

// getImage loads an image from a local path, an http(s) URL or an s3 URL.
func (r *Registry) getImage(ctx context.Context, args []object.Object) (object.Object, error) {
	source, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	var img image.Image
	if isRemote(source) {
		data, err := r.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		if img, _, err = image.Decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
	} else if img, err = imgio.Open(source); err != nil {
		return nil, err
	}
	return object.NewImage(clone.AsRGBA(img), source), nil
}

func isRemote(source string) bool {
	for _, prefix := range []string{"http://", "https://", "s3://"} {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}

// encodeBase64 encodes an Image as PNG, a String as its bytes, and any other
// value as its display form.
func encodeBase64(ctx context.Context, args []object.Object) (object.Object, error) {
	var data []byte
	switch arg := args[0].(type) {
	case *object.Image:
		var buf bytes.Buffer
		if err := imgio.PNGEncoder()(&buf, arg.Value()); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	default:
		data = []byte(arg.String())
	}
	return object.NewString(base64.StdEncoding.EncodeToString(data)), nil
}

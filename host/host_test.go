package host

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/deepnoodle-ai/screenscript/builtins"
	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/stretchr/testify/require"
)

func str(s string) object.Object { return object.NewString(s) }

func invoke(t *testing.T, r *Registry, name string, args ...object.Object) object.Object {
	t.Helper()
	result, err := r.Invoke(context.Background(), name, args)
	require.NoError(t, err)
	return result
}

func TestEveryBuiltinRegistered(t *testing.T) {
	r := New()
	for _, name := range builtins.Names() {
		_, ok := r.funcs[name]
		require.True(t, ok, name)
	}
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	r := New(WithOutput(&out))
	result := invoke(t, r, builtins.Print, str("hello"))
	invoke(t, r, builtins.Print, object.NewInt(42))
	require.Equal(t, "hello\n42\n", out.String())
	require.Equal(t, "hello", result.(*object.String).Value())
}

func TestArity(t *testing.T) {
	_, err := New().Invoke(context.Background(), builtins.CountArray, nil)
	require.EqualError(t, err, "expected 1 argument(s), got 0")

	_, err = New().Invoke(context.Background(), "nope", nil)
	require.EqualError(t, err, `unknown method "nope"`)
}

func TestInlineJSON(t *testing.T) {
	r := New()
	arr := invoke(t, r, builtins.GetJSONArray, str(` [1, "a", true]`))
	require.Equal(t, `[1, "a", true]`, arr.Inspect())

	dict := invoke(t, r, builtins.GetJSONDictionary, str(`{"b": 1, "a": [2.5]}`))
	require.Equal(t, `{"b": 1, "a": [2.5]}`, dict.Inspect())

	_, err := r.Invoke(context.Background(), builtins.GetJSONArray, []object.Object{str(`{"a": 1}`)})
	require.EqualError(t, err, "type error: expected a JSON array (Dictionary given)")
}

func TestJSONOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/items.json" {
			http.NotFound(w, req)
			return
		}
		w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))
	defer server.Close()

	r := New(WithFetcher(NewSourceFetcher(WithHTTPClient(server.Client()))))
	arr := invoke(t, r, builtins.GetJSONArray, str(server.URL+"/items.json"))
	require.Equal(t, 2, arr.(*object.Array).Len())

	_, err := r.Invoke(context.Background(), builtins.GetJSONArray, []object.Object{str(server.URL + "/missing")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 404")
}

type fakeS3 struct {
	objects map[string]string
	calls   int
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	body, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestJSONFromS3(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"bucket/data/app.json": `{"title": "Home"}`}}
	r := New(WithFetcher(NewSourceFetcher(WithS3Client(client))))

	dict := invoke(t, r, builtins.GetJSONDictionary, str("s3://bucket/data/app.json"))
	title, err := dict.(*object.Dictionary).Get(str("title"))
	require.NoError(t, err)
	require.Equal(t, "Home", title.String())
	require.Equal(t, 1, client.calls)

	_, err = r.Invoke(context.Background(), builtins.GetJSONDictionary, []object.Object{str("s3://bucket")})
	require.EqualError(t, err, `invalid s3 url "s3://bucket"`)
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, 2, 3]`), 0o644))

	arr := invoke(t, New(), builtins.GetJSONArray, str(path))
	require.Equal(t, "[1, 2, 3]", arr.Inspect())
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(1, 2, color.RGBA{R: 255, A: 255})
	return img
}

func TestImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel.png")
	require.NoError(t, imgio.Save(path, testImage(), imgio.PNGEncoder()))

	r := New()
	img := invoke(t, r, builtins.GetImage, str(path)).(*object.Image)
	require.Equal(t, "image(2x3)", img.Inspect())
	require.Equal(t, path, img.Name())

	encoded := invoke(t, r, builtins.EncodeBase64, img).(*object.String)
	data, err := base64.StdEncoding.DecodeString(encoded.Value())
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 3), decoded.Bounds())
	r2, _, _, _ := decoded.At(1, 2).RGBA()
	require.Equal(t, uint32(0xffff), r2)
}

func TestImageOverHTTP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	r := New(WithFetcher(NewSourceFetcher(WithHTTPClient(server.Client()))))
	img := invoke(t, r, builtins.GetImage, str(server.URL+"/pixel.png"))
	require.Equal(t, "image(2x3)", img.Inspect())
}

func TestEncodeBase64(t *testing.T) {
	r := New()
	require.Equal(t, "aGVsbG8=", invoke(t, r, builtins.EncodeBase64, str("hello")).String())
	require.Equal(t, "NDI=", invoke(t, r, builtins.EncodeBase64, object.NewInt(42)).String())
}

func TestContainerBuiltinsReturnCopies(t *testing.T) {
	r := New()
	arr := object.NewArray([]object.Object{object.NewInt(1)})
	grown := invoke(t, r, builtins.AddItemToArray, arr, str("x"))
	require.Equal(t, `[1, "x"]`, grown.Inspect())
	require.Equal(t, 1, arr.Len())
	require.Equal(t, int64(2), invoke(t, r, builtins.CountArray, grown).(*object.Int).Value())

	dict := object.NewDictionary()
	require.NoError(t, dict.Set(str("a"), object.NewInt(1)))
	added := invoke(t, r, builtins.AddItemToDictionary, dict, str("b"), object.NewInt(2))
	require.Equal(t, `{"a": 1, "b": 2}`, added.Inspect())
	require.Equal(t, 1, dict.Len())
	require.Equal(t, int64(2), invoke(t, r, builtins.CountDictionary, added).(*object.Int).Value())
	require.Equal(t, `["a", "b"]`, invoke(t, r, builtins.GetDictionaryKeys, added).Inspect())

	removed := invoke(t, r, builtins.RemoveItemFromDictionary, added, str("a"))
	require.Equal(t, `{"b": 2}`, removed.Inspect())
	require.Equal(t, 2, added.(*object.Dictionary).Len())
	unchanged := invoke(t, r, builtins.RemoveItemFromDictionary, removed, str("zzz"))
	require.Equal(t, `{"b": 2}`, unchanged.Inspect())

	_, err := r.Invoke(context.Background(), builtins.CountArray, []object.Object{dict})
	require.EqualError(t, err, "type error: expected an Array (Dictionary given)")
}

func TestVariables(t *testing.T) {
	store := NewMemoryStore()
	home := New(WithStore(store), WithScreen("home"))
	settings := New(WithStore(store), WithScreen("settings"))

	require.Equal(t, object.True, invoke(t, home, builtins.SetAppVariable, str("user"), str("ada")))
	require.Equal(t, object.True, invoke(t, home, builtins.SetScreenVariable, str("tab"), object.NewInt(2)))

	require.Equal(t, "ada", invoke(t, settings, builtins.GetAppVariable, str("user")).String())
	require.Equal(t, int64(2), invoke(t, home, builtins.GetScreenVariable, str("tab")).(*object.Int).Value())

	_, err := settings.Invoke(context.Background(), builtins.GetScreenVariable, []object.Object{str("tab")})
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, `variable not found: "tab"`)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	arr := object.NewArray([]object.Object{object.NewInt(1)})
	require.NoError(t, store.Set(ctx, AppScope, "a", arr))

	got, err := store.Get(ctx, AppScope, "a")
	require.NoError(t, err)
	require.True(t, arr.Equals(got))
	require.NotSame(t, arr, got)

	_, err = store.Get(ctx, ScreenScope("main"), "a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWithFunc(t *testing.T) {
	r := New(WithFunc(builtins.Print, func(ctx context.Context, args []object.Object) (object.Object, error) {
		return str("captured"), nil
	}))
	require.Equal(t, "captured", invoke(t, r, builtins.Print, str("x")).String())
}

package photo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, padTo int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	if padTo > buf.Len() {
		buf.Write(make([]byte, padTo-buf.Len()))
	}
	return buf.Bytes()
}

func pngFile(t *testing.T, name string, padTo int) File {
	data := pngBytes(t, padTo)
	return File{Name: name, Type: "image/png", Size: int64(len(data)), Content: bytes.NewReader(data)}
}

func TestAccept_PNGUnderLimit(t *testing.T) {
	var in Intake
	p, err := in.Accept(context.Background(), pngFile(t, "me.png", 2<<20))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.DataURI, "data:image/png;base64,"))
	assert.Equal(t, "2.0 MB", p.SizeLabel())
	assert.Equal(t, p.DataURI, in.DataURI())

	preview := in.Preview()
	assert.True(t, preview.HasPhoto)
	assert.Equal(t, "me.png", preview.Filename)
	assert.Equal(t, "2.0 MB", preview.Size)
}

func TestAccept_RejectsOversizedFile(t *testing.T) {
	var in Intake
	_, err := in.Accept(context.Background(), pngFile(t, "small.png", 0))
	require.NoError(t, err)
	before := in.DataURI()

	_, err = in.Accept(context.Background(), File{Name: "big.jpg", Type: "image/jpeg", Size: 6 << 20})

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, ReasonSize, rejected.Reason)
	assert.Equal(t, "File size must be less than 5MB.", rejected.Notice())
	assert.Equal(t, before, in.DataURI())
}

func TestAccept_OversizedContentKeepsPriorPhoto(t *testing.T) {
	var in Intake
	kept, err := in.Accept(context.Background(), pngFile(t, "keep.png", 0))
	require.NoError(t, err)

	data := pngBytes(t, 6<<20)
	_, err = in.Accept(context.Background(), File{Name: "big.png", Type: "image/png", Size: 1024, Content: bytes.NewReader(data)})

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, ReasonSize, rejected.Reason)
	current, ok := in.Current()
	require.True(t, ok)
	assert.Equal(t, kept.DataURI, current.DataURI)
	assert.Equal(t, "keep.png", current.Filename)
}

func TestAccept_RejectsDisallowedType(t *testing.T) {
	var in Intake
	_, err := in.Accept(context.Background(), File{Name: "anim.gif", Type: "image/gif", Size: 1024})

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, ReasonType, rejected.Reason)
	assert.Equal(t, "Please upload a JPG or PNG image.", rejected.Notice())
	assert.Equal(t, Preview{}, in.Preview())
}

func TestAccept_DeclaredTypeIsCaseInsensitive(t *testing.T) {
	assert.NoError(t, Validate(File{Name: "a.jpg", Type: "IMAGE/JPG", Size: 10}))
	assert.Error(t, Validate(File{Name: "a.webp", Type: "image/webp", Size: 10}))
	assert.NoError(t, Validate(File{Name: "a.png", Type: "image/png", Size: MaxSize}))
}

func TestAccept_DecodeFailureClearsSlot(t *testing.T) {
	var in Intake
	_, err := in.Accept(context.Background(), pngFile(t, "ok.png", 0))
	require.NoError(t, err)

	junk := []byte("definitely not an image")
	_, err = in.Accept(context.Background(), File{Name: "fake.png", Type: "image/png", Size: int64(len(junk)), Content: bytes.NewReader(junk)})

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	_, ok := in.Current()
	assert.False(t, ok)
}

func TestAccept_LastWriteWins(t *testing.T) {
	var in Intake
	_, err := in.Accept(context.Background(), pngFile(t, "first.png", 0))
	require.NoError(t, err)
	_, err = in.Accept(context.Background(), pngFile(t, "second.png", 0))
	require.NoError(t, err)

	p, ok := in.Current()
	require.True(t, ok)
	assert.Equal(t, "second.png", p.Filename)
}

func TestAcceptAsync(t *testing.T) {
	var in Intake
	res := <-in.AcceptAsync(context.Background(), pngFile(t, "async.png", 0))
	require.NoError(t, res.Err)
	assert.Equal(t, "async.png", res.Photo.Filename)
}

func TestAccept_CancelledContextKeepsPriorPhoto(t *testing.T) {
	var in Intake
	_, err := in.Accept(context.Background(), pngFile(t, "keep.png", 0))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = in.Accept(ctx, pngFile(t, "late.png", 0))
	assert.ErrorIs(t, err, context.Canceled)

	p, ok := in.Current()
	require.True(t, ok)
	assert.Equal(t, "keep.png", p.Filename)
}

func TestRemove(t *testing.T) {
	var in Intake
	_, err := in.Accept(context.Background(), pngFile(t, "me.png", 0))
	require.NoError(t, err)

	in.Remove()
	assert.Equal(t, "", in.DataURI())
	assert.Equal(t, Preview{}, in.Preview())
}

func TestDisplaySize(t *testing.T) {
	assert.Equal(t, "0.0 MB", DisplaySize(0))
	assert.Equal(t, "1.5 MB", DisplaySize(3<<19))
}

// Package photo accepts one profile photo, validates it, and encodes it as a data URI.
package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for DecodeConfig
	_ "image/png"
	"io"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the upload ceiling (5 MiB).
const MaxSize int64 = 5 << 20

// AllowedTypes is the declared-type allow-list.
var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// File is a selected file as delivered by a drop or file-picker event.
type File struct {
	Name    string
	Type    string // declared MIME type
	Size    int64  // declared size in bytes
	Content io.Reader
}

// Photo is the stored photo: a self-contained data URI plus display metadata.
type Photo struct {
	DataURI  string
	Filename string
	Size     int64
}

// SizeLabel formats the size for display, e.g. "2.0 MB".
func (p *Photo) SizeLabel() string {
	return DisplaySize(p.Size)
}

// Preview is what the photo area shows. The zero value is the empty state.
type Preview struct {
	HasPhoto bool   `json:"has_photo"`
	Filename string `json:"filename,omitempty"`
	Size     string `json:"size,omitempty"`
	DataURI  string `json:"data_uri,omitempty"`
}

// Result is delivered by AcceptAsync once decoding settles.
type Result struct {
	Photo *Photo
	Err   error
}

// Intake owns the single photo slot. The zero value is ready to use.
type Intake struct {
	mu      sync.Mutex
	current *Photo
}

// Accept validates and decodes f, then stores it, replacing any prior photo.
// Type and size rejections leave the slot untouched, including a size
// rejection found while reading content. The slot keeps its prior photo while
// decoding runs; a decode failure leaves no photo set.
func (in *Intake) Accept(ctx context.Context, f File) (*Photo, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	p, err := decode(ctx, f)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			return nil, err
		}
		in.mu.Lock()
		in.current = nil
		in.mu.Unlock()
		return nil, err
	}

	in.mu.Lock()
	in.current = p
	in.mu.Unlock()
	return p, nil
}

// AcceptAsync runs Accept on a goroutine and delivers its outcome on the returned channel.
func (in *Intake) AcceptAsync(ctx context.Context, f File) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		p, err := in.Accept(ctx, f)
		ch <- Result{Photo: p, Err: err}
	}()
	return ch
}

// Current returns the stored photo, if any.
func (in *Intake) Current() (*Photo, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.current == nil {
		return nil, false
	}
	p := *in.current
	return &p, true
}

// DataURI returns the stored photo's data URI, or "".
func (in *Intake) DataURI() string {
	if p, ok := in.Current(); ok {
		return p.DataURI
	}
	return ""
}

// Remove clears the stored photo and returns the slot to its empty state.
func (in *Intake) Remove() {
	in.mu.Lock()
	in.current = nil
	in.mu.Unlock()
}

// Preview returns the current photo area state.
func (in *Intake) Preview() Preview {
	p, ok := in.Current()
	if !ok {
		return Preview{}
	}
	return Preview{
		HasPhoto: true,
		Filename: p.Filename,
		Size:     p.SizeLabel(),
		DataURI:  p.DataURI,
	}
}

// Validate applies the declared type allow-list and the size ceiling.
func Validate(f File) error {
	declared := strings.ToLower(strings.TrimSpace(f.Type))
	allowed := false
	for _, t := range AllowedTypes {
		if declared == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return &RejectedError{Filename: f.Name, Reason: ReasonType, Type: f.Type, Size: f.Size}
	}
	if f.Size > MaxSize {
		return &RejectedError{Filename: f.Name, Reason: ReasonSize, Type: f.Type, Size: f.Size}
	}
	return nil
}

// DisplaySize formats a byte count in MB with one decimal.
func DisplaySize(size int64) string {
	return fmt.Sprintf("%.1f MB", float64(size)/float64(1<<20))
}

func decode(ctx context.Context, f File) (*Photo, error) {
	if f.Content == nil {
		return nil, &DecodeError{Filename: f.Name, Cause: fmt.Errorf("no content")}
	}

	data, err := readAll(ctx, io.LimitReader(f.Content, MaxSize+1))
	if err != nil {
		return nil, &DecodeError{Filename: f.Name, Cause: err}
	}
	if int64(len(data)) > MaxSize {
		return nil, &RejectedError{Filename: f.Name, Reason: ReasonSize, Type: f.Type, Size: int64(len(data))}
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		return nil, &DecodeError{Filename: f.Name, Cause: fmt.Errorf("content is %s", mtype.String())}
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, &DecodeError{Filename: f.Name, Cause: err}
	}

	return &Photo{
		DataURI:  "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data),
		Filename: f.Name,
		Size:     int64(len(data)),
	}, nil
}

// readAll reads r in chunks so a cancelled context stops a slow read.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 64<<10)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

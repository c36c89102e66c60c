package assist

import (
	"context"
	"sync"

	"github.com/jonathan/cv-builder/internal/form"
)

// DimmedOpacity is the opacity of a field while a call it started is outstanding.
const DimmedOpacity = 0.6

// NoGrammarErrors is reported when a grammar check finds nothing to correct.
const NoGrammarErrors = "✓ No grammar errors found!"

// Field is a text input that an assist call reads from and writes back to.
// While any call is outstanding the field is disabled and dimmed.
type Field struct {
	mu    sync.Mutex
	name  string
	value string
	busy  int
}

// NewField returns an enabled field holding value.
func NewField(name, value string) *Field {
	return &Field{name: name, value: value}
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Value returns the current value.
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// SetValue replaces the value.
func (f *Field) SetValue(v string) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
}

// Disabled reports whether a call is outstanding.
func (f *Field) Disabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy > 0
}

// Opacity is 1 when idle and DimmedOpacity while busy.
func (f *Field) Opacity() float64 {
	if f.Disabled() {
		return DimmedOpacity
	}
	return 1
}

// Run disables the field, calls fn with its value, and on success stores what
// fn returned. The field is re-enabled whatever fn does; on error the prior
// value is kept.
func (f *Field) Run(ctx context.Context, fn func(ctx context.Context, value string) (string, error)) error {
	f.mu.Lock()
	f.busy++
	value := f.value
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy--
		f.mu.Unlock()
	}()

	next, err := fn(ctx, value)
	if err != nil {
		return err
	}
	f.SetValue(next)
	return nil
}

// ImproveField replaces the field with an improved version of its text.
func (c *Client) ImproveField(ctx context.Context, f *Field) error {
	return f.Run(ctx, func(ctx context.Context, value string) (string, error) {
		res, err := c.ImproveBullet(ctx, value)
		if err != nil {
			return "", err
		}
		return res.Get()
	})
}

// ImproveBulletsField improves every line of a multi-line field.
func (c *Client) ImproveBulletsField(ctx context.Context, f *Field) (BatchResult, error) {
	var batch BatchResult
	err := f.Run(ctx, func(ctx context.Context, value string) (string, error) {
		var err error
		batch, err = c.ImproveBullets(ctx, value)
		if err != nil {
			return "", err
		}
		return batch.Text(), nil
	})
	return batch, err
}

// CheckGrammarField applies corrections to the field. The returned notice is
// NoGrammarErrors when the text was already clean, and "" otherwise.
func (c *Client) CheckGrammarField(ctx context.Context, f *Field) (string, error) {
	var notice string
	err := f.Run(ctx, func(ctx context.Context, value string) (string, error) {
		res, err := c.CheckGrammar(ctx, value)
		if err != nil {
			return "", err
		}
		check, err := res.Get()
		if err != nil {
			return "", err
		}
		if !check.HasChanges {
			notice = NoGrammarErrors
			return value, nil
		}
		return check.Corrected, nil
	})
	return notice, err
}

// RewriteField replaces the field with a rewrite in the given tone.
func (c *Client) RewriteField(ctx context.Context, f *Field, tone string) error {
	return f.Run(ctx, func(ctx context.Context, value string) (string, error) {
		res, err := c.RewriteTone(ctx, value, tone)
		if err != nil {
			return "", err
		}
		return res.Get()
	})
}

// SuggestSkillsInto merges suggestions into the technical and soft skill fields.
func (c *Client) SuggestSkillsInto(ctx context.Context, jobTitle string, technical, soft *Field) error {
	res, err := c.SuggestSkills(ctx, jobTitle)
	if err != nil {
		return err
	}
	skills, err := res.Get()
	if err != nil {
		return err
	}
	technical.SetValue(form.MergeSkillField(technical.Value(), skills.Technical))
	soft.SetValue(form.MergeSkillField(soft.Value(), skills.Soft))
	return nil
}

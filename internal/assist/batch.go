package assist

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/form"
)

// BulletPrefix is prepended to every successfully improved line.
const BulletPrefix = "• "

// LineOutcome is the result for one line of a batch.
type LineOutcome struct {
	Original string
	Improved string
	Reason   string
}

// OK reports whether the line was improved.
func (o LineOutcome) OK() bool {
	return o.Reason == ""
}

// Line is the text written back for this line.
func (o LineOutcome) Line() string {
	if o.OK() {
		return BulletPrefix + o.Improved
	}
	return o.Original
}

// BatchResult holds per-line outcomes in input order.
type BatchResult struct {
	Lines []LineOutcome
}

// Text joins the written-back lines with newlines.
func (b BatchResult) Text() string {
	lines := make([]string, len(b.Lines))
	for i, o := range b.Lines {
		lines[i] = o.Line()
	}
	return strings.Join(lines, "\n")
}

// Failed counts lines the service declined to improve.
func (b BatchResult) Failed() int {
	n := 0
	for _, o := range b.Lines {
		if !o.OK() {
			n++
		}
	}
	return n
}

// ImproveBullets improves each non-blank line of text. Lines are queued in
// order and at most BatchConcurrency requests run at once (one by default).
// A line the service declines keeps its original text; a transport failure
// aborts the batch.
func (c *Client) ImproveBullets(ctx context.Context, text string) (BatchResult, error) {
	if strings.TrimSpace(text) == "" {
		return BatchResult{}, &MissingInputError{Field: "bullet", Notice: "Please enter some text first"}
	}

	var originals []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) != "" {
			originals = append(originals, line)
		}
	}

	outcomes := make([]LineOutcome, len(originals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, line := range originals {
		outcomes[i].Original = line
		clean := form.StripBullet(strings.TrimSpace(line))
		if clean == "" {
			outcomes[i].Reason = "empty bullet"
			continue
		}
		g.Go(func() error {
			res, err := c.ImproveBullet(gctx, clean)
			if err != nil {
				return err
			}
			if improved, ferr := res.Get(); ferr == nil {
				outcomes[i].Improved = improved
			} else {
				outcomes[i].Reason = res.Reason()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	c.logger.Debug().Int("lines", len(outcomes)).Msg("batch improvement finished")
	return BatchResult{Lines: outcomes}, nil
}

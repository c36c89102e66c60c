package form

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML builds a State from rendered form markup. Entries are read from the
// .repeatable-item blocks of each section container in document order, so stale
// indices embedded in the markup do not matter; the result is renumbered.
func FromHTML(r io.Reader, opts *Options) (*State, []error, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse form HTML: %w", err)
	}

	s := New(withoutSeed(opts))

	for _, id := range TopLevelFields {
		sel := doc.Find("#" + id).First()
		if sel.Length() == 0 {
			continue
		}
		s.fields[id] = inputValue(sel)
	}

	var notices []error
	for _, kind := range Kinds {
		container := kindSchemas[kind].container
		doc.Find("#" + container + " .repeatable-item").Each(func(_ int, item *goquery.Selection) {
			attrs := make(map[string]string)
			item.Find("input[name], textarea[name]").Each(func(_ int, input *goquery.Selection) {
				name, _ := input.Attr("name")
				k, attr, _, err := ParseFieldName(name)
				if err != nil || k != kind {
					return
				}
				attrs[attr] = inputValue(input)
			})
			notices = append(notices, s.load(kind, attrs)...)
		})
	}
	return s, notices, nil
}

func inputValue(sel *goquery.Selection) string {
	if goquery.NodeName(sel) == "textarea" {
		return sel.Text()
	}
	if t, _ := sel.Attr("type"); strings.EqualFold(t, "checkbox") {
		if _, on := sel.Attr("checked"); on {
			return "on"
		}
		return ""
	}
	v, _ := sel.Attr("value")
	return v
}

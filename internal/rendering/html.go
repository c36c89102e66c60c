package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const printTemplate = "cv.html.tmpl"

var (
	tmpl     *template.Template
	tmplErr  error
	tmplOnce sync.Once
)

// photoDataURI accepts only the image types photo intake produces.
var photoDataURI = regexp.MustCompile(`^data:image/(png|jpeg);base64,[A-Za-z0-9+/=]+$`)

var funcs = template.FuncMap{
	"join":      strings.Join,
	"dateRange": DateRange,
	"contact":   contactLine,
	"photoSrc":  photoSrc,
}

func printTmpl() (*template.Template, error) {
	tmplOnce.Do(func() {
		tmpl, tmplErr = template.New(printTemplate).Funcs(funcs).ParseFS(templateFiles, "templates/"+printTemplate)
	})
	if tmplErr != nil {
		return nil, &TemplateError{Message: "failed to parse print template", Cause: tmplErr}
	}
	return tmpl, nil
}

// RenderHTML renders doc with the print template.
func RenderHTML(doc *types.Document) (string, error) {
	t, err := printTmpl()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := t.Execute(&sb, doc); err != nil {
		return "", &TemplateError{Message: "failed to execute print template", Cause: err}
	}
	return sb.String(), nil
}

// DateRange formats "Jan 1, 2020 - Present" style ranges. A lone date prints alone.
func DateRange(start, end string, current bool) string {
	switch {
	case current && start != "":
		return start + " - Present"
	case current:
		return "Present"
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

// PDFFilename builds "CV_<Name_With_Underscores>_<YYYYMMDD>.pdf"; an empty
// name becomes "Unknown".
func PDFFilename(name string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Unknown"
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.Map(func(r rune) rune {
		if r == '"' || r == '/' || r == '\\' || r < 0x20 {
			return -1
		}
		return r
	}, name)
	return fmt.Sprintf("CV_%s_%s.pdf", name, now.Format("20060102"))
}

func contactLine(p types.PersonalInfo) []string {
	var parts []string
	for _, v := range []string{p.Email, p.Phone, location(p.Address), p.LinkedIn, p.Website} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

func location(a types.Address) string {
	switch {
	case a.City != "" && a.Country != "":
		return a.City + ", " + a.Country
	case a.City != "":
		return a.City
	default:
		return a.Country
	}
}

func photoSrc(uri string) template.URL {
	if !photoDataURI.MatchString(uri) {
		return ""
	}
	return template.URL(uri) //nolint:gosec // restricted to base64 png/jpeg data URIs
}

// Package observability sets up structured logging and formats documents and
// assist results for verbose CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/assist"
	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// listSummary writes up to maxItemsToShow items followed by a count of the rest.
func listSummary(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintDocument outputs a human-readable summary of a serialized CV.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	info := doc.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:     %s\n", info.Name))
	if info.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", info.Title))
	}
	sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email))
	if info.PhotoURL != "" {
		sb.WriteString("Photo:    attached\n")
	}

	if doc.ProfessionalSummary != "" {
		stats := form.Stats(doc.ProfessionalSummary)
		sb.WriteString(fmt.Sprintf("Summary:  %d chars, %d words (%s)\n", stats.Chars, stats.Words, stats.Status))
	}
	sb.WriteString("\n")

	if len(doc.WorkExperience) > 0 {
		sb.WriteString(fmt.Sprintf("Work Experience (%d):\n", len(doc.WorkExperience)))
		items := make([]string, len(doc.WorkExperience))
		for i, w := range doc.WorkExperience {
			end := w.EndDate
			if w.Current {
				end = "Present"
			}
			items[i] = fmt.Sprintf("%s @ %s [%s - %s]", w.JobTitle, w.Company, w.StartDate, end)
		}
		listSummary(&sb, items)
		sb.WriteString("\n")
	}

	if len(doc.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(doc.Education)))
		items := make([]string, len(doc.Education))
		for i, e := range doc.Education {
			items[i] = fmt.Sprintf("%s, %s", e.Degree, e.Institution)
		}
		listSummary(&sb, items)
		sb.WriteString("\n")
	}

	if len(doc.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications (%d):\n", len(doc.Certifications)))
		items := make([]string, len(doc.Certifications))
		for i, c := range doc.Certifications {
			items[i] = c.Name
		}
		listSummary(&sb, items)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Skills:   %d technical, %d soft\n", len(doc.Skills.Technical), len(doc.Skills.Soft)))

	p.printBox("CV DOCUMENT", sb.String())
}

// PrintBatch outputs the line-by-line outcome of a bullet improvement batch.
func (p *Printer) PrintBatch(result assist.BatchResult) {
	if len(result.Lines) == 0 {
		return
	}

	var sb strings.Builder
	for i, line := range result.Lines {
		if line.OK() {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, line.Improved))
		} else {
			sb.WriteString(fmt.Sprintf("%d. [kept] %s\n", i+1, line.Original))
			sb.WriteString(fmt.Sprintf("   ↳ %s\n", line.Reason))
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d improved\n", len(result.Lines)-result.Failed(), len(result.Lines)))

	p.printBox("IMPROVED BULLETS", sb.String())
}

// PrintValidation outputs validation problems, or a confirmation when there are none.
func (p *Printer) PrintValidation(problems []string) {
	if len(problems) == 0 {
		p.printBox("VALIDATION", "✓ CV data is valid")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d problem(s):\n", len(problems)))
	for _, msg := range problems {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", msg))
	}
	p.printBox("VALIDATION", sb.String())
}

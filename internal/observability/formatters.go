// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/portfolio-site/internal/rendering"
	"github.com/jonathan/portfolio-site/internal/types"
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

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocumentSummary outputs the languages, pages, sections and projects of
// a loaded content document.
func (p *Printer) PrintDocumentSummary(source string, doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:    %s\n", source))
	sb.WriteString(fmt.Sprintf("Site:      %s\n", doc.Globals.SiteName.Get(doc.DefaultLanguage)))
	langs := make([]string, len(doc.Languages))
	for i, l := range doc.Languages {
		langs[i] = string(l)
	}
	sb.WriteString(fmt.Sprintf("Languages: %s (default %s)\n", strings.Join(langs, ", "), doc.DefaultLanguage))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Pages (%d):\n", len(doc.Pages)))
	for _, page := range doc.Pages {
		sb.WriteString(fmt.Sprintf("  • %s /%s (%d sections)\n",
			page.ID, page.Slug.Get(doc.DefaultLanguage), len(page.Sections)))
	}
	sb.WriteString("\n")

	ids := make([]string, 0, len(doc.Sections))
	for id := range doc.Sections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sb.WriteString(fmt.Sprintf("Sections (%d):\n", len(ids)))
	count := min(len(ids), maxItemsToShow)
	for _, id := range ids[:count] {
		section := doc.Sections[id]
		sb.WriteString(fmt.Sprintf("  • %s [%s] %d components\n", id, section.Type, len(section.Components)))
	}
	if len(ids) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ids)-maxItemsToShow))
	}

	projects := doc.AllProjects()
	if len(projects) > 0 {
		featured := 0
		for _, project := range projects {
			if project.Featured {
				featured++
			}
		}
		sb.WriteString(fmt.Sprintf("\nProjects: %d (%d featured)\n", len(projects), featured))
	}

	p.printBox("CONTENT DOCUMENT", sb.String())
}

// PrintRenderTree outputs the sections and components emitted for a page,
// plus every node skipped because its type has no renderer.
func (p *Printer) PrintRenderTree(tree *rendering.Tree, locale types.Locale) {
	if tree == nil || tree.Page == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page:   %s\n", tree.Page.ID))
	sb.WriteString(fmt.Sprintf("Locale: %s\n", locale))
	sb.WriteString("\n")

	for i, section := range tree.Sections {
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, section.ID, section.Type))
		for _, c := range section.Components {
			sb.WriteString(fmt.Sprintf("     └ %s [%s]\n", c.ID, c.Type))
		}
	}

	if len(tree.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠ Skipped (%d):\n", len(tree.Skipped)))
		for _, skipped := range tree.Skipped {
			sb.WriteString(fmt.Sprintf("  • %s %q (%s): %s\n", skipped.Kind, skipped.ID, skipped.Tag, skipped.Reason))
		}
	}

	p.printBox("RENDER TREE", sb.String())
}

// PrintUntranslated lists fields that lack text in some document language.
// Lines are not boxed so long paths stay intact.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintUntranslated(fields []types.UntranslatedField) {
	if len(fields) == 0 {
		fmt.Fprintln(p.out, "✓ All fields translated")
		return
	}
	fmt.Fprintf(p.out, "⚠ Untranslated fields (%d):\n", len(fields))
	for _, f := range fields {
		fmt.Fprintf(p.out, "  • %s\n", f)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/jonathan/portfolio-site/internal/observability"
	"github.com/jonathan/portfolio-site/internal/rendering"
	"github.com/jonathan/portfolio-site/internal/schemas"
	"github.com/jonathan/portfolio-site/internal/types"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect the content document",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the content document",
	Long:  "Loads the configured content document, checks it against the content schema, prints a summary and lists untranslated fields.",
	RunE:  runContentValidate,
}

var validateSchema string

var (
	renderPage    string
	renderLang    string
	renderVerbose bool
)

var contentRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one page to stdout",
	Long:  "Renders a page by its localized slug and writes the HTML to stdout. With --verbose the render tree is printed to stderr.",
	RunE:  runContentRender,
}

func init() {
	contentValidateCmd.Flags().StringVar(&validateSchema, "schema", "", "Also validate a content file against this JSON Schema file")
	contentRenderCmd.Flags().StringVarP(&renderPage, "page", "p", "", "Page slug (empty renders the home page)")
	contentRenderCmd.Flags().StringVarP(&renderLang, "lang", "l", "", "Locale (defaults to the document default)")
	contentRenderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print the render tree to stderr")

	contentCmd.AddCommand(contentValidateCmd, contentRenderCmd)
	rootCmd.AddCommand(contentCmd)
}

func runContentValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := newContentStore(cfg)
	doc, err := store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("content is invalid: %w", err)
	}
	if validateSchema != "" {
		location, isURL := cfg.ContentSource()
		if isURL {
			return fmt.Errorf("--schema needs a content file, not %s", location)
		}
		if err := schemas.ValidateJSON(validateSchema, location); err != nil {
			return fmt.Errorf("content does not match %s: %w", validateSchema, err)
		}
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintDocumentSummary(store.SourceName(), doc)
	printer.PrintUntranslated(doc.Untranslated())
	return nil
}

func runContentRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	store := newContentStore(cfg)
	doc, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	locale := doc.DefaultLanguage
	if renderLang != "" {
		l, ok := types.ParseLocale(renderLang)
		if !ok || !doc.SupportsLanguage(l) {
			return fmt.Errorf("unsupported language %q", renderLang)
		}
		locale = l
	}

	page, err := store.PageBySlug(ctx, locale, renderPage)
	if err != nil {
		return err
	}
	if page == nil {
		return fmt.Errorf("page not found: %q", renderPage)
	}

	rc := rendering.NewRenderContext(doc, locale)
	tree, err := rendering.NewRenderer().RenderPage(rc, page)
	if err != nil {
		return fmt.Errorf("failed to render page %q: %w", page.ID, err)
	}
	if renderVerbose {
		observability.NewPrinter(os.Stderr).PrintRenderTree(tree, locale)
	}

	path := rc.PageHref(page)
	return rendering.Shell(rc, rendering.PageMeta(rc, page, path), tree.Body).Render(ctx, cmd.OutOrStdout())
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/spf13/cobra"
)

func newSearchCmd(e *env) *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search articles, timeline events and evidence documents",
		Long: `Search prints every record whose text fields contain the query,
grouped by kind, as JSON.

Example:
  contentctl search "القدس" --source files
  contentctl search olive --category culture --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be non-negative")
			}
			a, err := newApp(e.cfg, e.log, false)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.services.Content.Search(cmd.Context(), args[0], models.SearchFilter{Category: category, Limit: limit})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only records in this category slug")
	cmd.Flags().IntVar(&limit, "limit", 0, "cap each kind at this many results (0 = no cap)")
	return cmd
}

// Kinds accepted by list
const (
	kindArticles   = "articles"
	kindTimeline   = "timeline"
	kindEvidence   = "evidence"
	kindCategories = "categories"
)

func newListCmd(e *env) *cobra.Command {
	var (
		category string
		limit    int
		featured bool
		docType  string
		status   string
	)

	cmd := &cobra.Command{
		Use:       "list <articles|timeline|evidence|categories>",
		Short:     "List content records as JSON",
		ValidArgs: []string{kindArticles, kindTimeline, kindEvidence, kindCategories},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(e.cfg, e.log, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			content := a.services.Content

			var out any
			switch args[0] {
			case kindArticles:
				filter := models.ArticleFilter{Category: category, Limit: limit}
				if cmd.Flags().Changed("featured") {
					filter.Featured = &featured
				}
				out, err = content.Articles(ctx, filter)
			case kindTimeline:
				out, err = content.Timeline(ctx, models.TimelineFilter{Category: category, Limit: limit})
			case kindEvidence:
				out, err = content.Evidence(ctx, models.EvidenceFilter{
					Category:           category,
					DocumentType:       models.DocumentType(docType),
					VerificationStatus: models.VerificationStatus(status),
					Limit:              limit,
				})
			case kindCategories:
				out, err = content.Categories(ctx)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only records in this category slug")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records (0 = all)")
	cmd.Flags().BoolVar(&featured, "featured", false, "articles: only featured (or, with =false, only non-featured)")
	cmd.Flags().StringVar(&docType, "document-type", "", "evidence: report, document, testimony, media or other")
	cmd.Flags().StringVar(&status, "status", "", "evidence: verified, pending or disputed")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

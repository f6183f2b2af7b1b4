package library

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lepinkainen/gameshelf/internal/cmdutil"
	"github.com/lepinkainen/gameshelf/internal/enrichment"
)

// Covers prints the ranked cover candidates for title.
func Covers(ctx context.Context, title, platformName string, limit int) ([]enrichment.Candidate, error) {
	p, err := parseOptionalPlatform(platformName)
	if err != nil {
		return nil, err
	}

	candidates := newResolver().ResolveCoverOptions(ctx, title, p, limit)
	if len(candidates) == 0 {
		_, _ = fmt.Fprintf(out, "No covers found for %q.\n", title)
		return candidates, nil
	}

	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Source,
			c.Title,
			formatYear(c.Year(0)),
			strings.Join(c.Platforms, ", "),
			c.ThumbnailURL,
		})
	}
	_, _ = fmt.Fprintln(out, cmdutil.RenderTable(
		[]string{"#", "Source", "Title", "Year", "Platforms", "Cover"},
		rows,
		[]cmdutil.Alignment{cmdutil.AlignRight},
	))
	return candidates, nil
}

// Autofill prints the metadata the create flow would apply to title.
func Autofill(ctx context.Context, title, platformName string, year int) (enrichment.AutofillResult, error) {
	p, err := parseOptionalPlatform(platformName)
	if err != nil {
		return enrichment.AutofillResult{}, err
	}
	if p == "" {
		p = defaultPlatform()
	}
	if year == 0 {
		year = now().Year()
	}

	result := newResolver().ResolveAutofill(ctx, title, p, year)
	_, _ = fmt.Fprintln(out, cmdutil.RenderTable(
		[]string{"Field", "Value"},
		[][]string{
			{"Title", result.Title},
			{"Platform", result.Platform.String()},
			{"Year", formatYear(result.Year)},
			{"Cover", result.CoverURL},
		},
		nil,
	))
	return result, nil
}

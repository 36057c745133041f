package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lawshop/internal/catalog"
)

type catalogFlags struct {
	search      string
	sort        string
	categories  []string
	priceMin    string
	priceMax    string
	ratingMin   string
	ratingMax   string
	durationMin string
	durationMax string
	format      string
	audience    string
	inStock     bool
	page        int
}

func (f catalogFlags) state(pageSize int) catalog.FilterState {
	s := catalog.NewFilterState(pageSize)
	s.Search = strings.TrimSpace(f.search)
	s.Sort = catalog.ParseSortKey(f.sort)
	for _, c := range f.categories {
		s.ToggleCategory(c, true)
	}
	s.Price = catalog.Range{Min: catalog.ParseNumber(f.priceMin), Max: catalog.ParseNumber(f.priceMax)}
	s.Rating = catalog.Range{Min: catalog.ParseNumber(f.ratingMin), Max: catalog.ParseNumber(f.ratingMax)}
	s.Duration = catalog.Range{Min: catalog.ParseNumber(f.durationMin), Max: catalog.ParseNumber(f.durationMax)}
	s.Format = strings.TrimSpace(f.format)
	s.Audience = strings.TrimSpace(f.audience)
	s.InStockOnly = f.inStock
	s.Page = max(f.page, 1)
	return s
}

func catalogCmd(app *App) *cobra.Command {
	var f catalogFlags
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := f.state(app.Cfg.CatalogPageSize)
			res := catalog.NewEngine(app.Services).Load(cmd.Context(), &state)
			if res.Err != nil {
				return errors.New(res.Message)
			}
			w := cmd.OutOrStdout()
			if len(res.Items) > 0 {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tRATING\tFORMAT")
				for _, s := range res.Items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Category,
						money(s.Price, s.Currency), strconv.FormatFloat(s.Rating, 'f', 1, 64), s.Format)
				}
				tw.Flush()
			}
			fmt.Fprintln(w, res.Message)
			if res.Pager.Visible {
				fmt.Fprintf(w, "Pages: %s\n", pageBar(res.Pager))
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.search, "search", "s", "", "full-text search")
	fl.StringVar(&f.sort, "sort", "", "priceAsc|priceDesc|titleAsc|titleDesc|ratingAsc|ratingDesc|durationAsc|durationDesc")
	fl.StringSliceVarP(&f.categories, "category", "c", nil, "category filter, repeatable")
	fl.StringVar(&f.priceMin, "price-min", "", "minimum price")
	fl.StringVar(&f.priceMax, "price-max", "", "maximum price")
	fl.StringVar(&f.ratingMin, "rating-min", "", "minimum rating")
	fl.StringVar(&f.ratingMax, "rating-max", "", "maximum rating")
	fl.StringVar(&f.durationMin, "duration-min", "", "minimum duration in minutes")
	fl.StringVar(&f.durationMax, "duration-max", "", "maximum duration in minutes")
	fl.StringVar(&f.format, "format", "", "online|in_person|hybrid")
	fl.StringVar(&f.audience, "audience", "", "audience filter")
	fl.BoolVar(&f.inStock, "in-stock", false, "only services in stock")
	fl.IntVarP(&f.page, "page", "p", 1, "page number")

	cmd.AddCommand(&cobra.Command{
		Use:   "vocab",
		Short: "List the categories and formats filters accept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := catalog.NewEngine(app.Services).Vocabulary(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Categories: %s\n", strings.Join(v.Categories, ", "))
			formats := make([]string, 0, len(v.Formats))
			for _, f := range v.Formats {
				formats = append(formats, string(f))
			}
			fmt.Fprintf(w, "Formats: %s\n", strings.Join(formats, ", "))
			return nil
		},
	})
	return cmd
}

// pageBar renders the page window with the current page in brackets.
func pageBar(p catalog.Pager) string {
	parts := make([]string, 0, len(p.Pages)+2)
	if p.HasPrev {
		parts = append(parts, "<")
	}
	for _, n := range p.Pages {
		if n == p.Page {
			parts = append(parts, fmt.Sprintf("[%d]", n))
			continue
		}
		parts = append(parts, strconv.Itoa(n))
	}
	if p.HasNext {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}

package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/listenupapp/shelfwrapped/internal/domain"
	"github.com/listenupapp/shelfwrapped/internal/normalize"
)

// RenderBundle prints a recap as a set of tables.
func RenderBundle(w io.Writer, b *domain.StatsBundle, genreRows int) {
	summary := newTable(w, fmt.Sprintf("%d wrapped for profile %s", b.Year, b.ProfileID))
	summary.AppendHeader(table.Row{"Stat", "Value"})
	summary.AppendRows([]table.Row{
		{"Books read this year", b.YearBooks},
		{"Books on read shelf", b.TotalBooks},
		{"Average rating", fmt.Sprintf("%.2f", b.AverageRating)},
		{"Average pages", fmt.Sprintf("%.0f", b.AveragePages)},
		{"Longest book", pagesLabel(b.LongestBook)},
		{"Shortest book", pagesLabel(b.ShortestBook)},
		{"Average days to finish", fmt.Sprintf("%.1f", b.AverageReadingDays)},
		{"Fastest read", daysLabel(b.FastestRead, b.FastestReadDays)},
		{"Slowest read", daysLabel(b.SlowestRead, b.SlowestReadDays)},
		{"Dependability", fmt.Sprintf("%.0f%% (%d read of %d added)", b.DependabilityRatio*100, b.ReadAndAddedCount, b.ReadAndAddedCount+b.ToReadAddedCount)},
		{"Hater moment", disparityLabel(b.HaterMoment, b.HaterDisparity)},
		{"Fan moment", disparityLabel(b.FanMoment, b.FanDisparity)},
		{"Most scathing review", title(b.MostScathingReview)},
		{"Most positive review", title(b.MostPositiveReview)},
	})
	summary.Render()

	if len(b.TopRatedBooks) > 0 {
		top := newTable(w, "Top rated")
		top.AppendHeader(table.Row{"#", "Title", "Author", "Rating"})
		for i, book := range b.TopRatedBooks {
			top.AppendRow(table.Row{i + 1, book.Title, book.Author, stars(book.UserRating)})
		}
		top.Render()
	}

	if len(b.TopGenres) > 0 {
		genres := newTable(w, "Top genres")
		genres.AppendHeader(table.Row{"Genre", "Books", "Share"})
		for i, g := range b.TopGenres {
			if genreRows > 0 && i >= genreRows {
				break
			}
			genres.AppendRow(table.Row{g.Genre, g.Count, fmt.Sprintf("%.1f%%", g.Percentage)})
		}
		genres.Render()
	}

	if len(b.MonthlyTotals) > 0 {
		months := newTable(w, "Books per month")
		header := table.Row{}
		row := table.Row{}
		for _, m := range normalize.Months {
			header = append(header, m)
			row = append(row, b.MonthlyTotals[m])
		}
		months.AppendHeader(header)
		months.AppendRow(row)
		months.Render()
	}
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}

func title(b *domain.Book) string {
	if b == nil {
		return "-"
	}
	return b.Title
}

func pagesLabel(b *domain.Book) string {
	if b == nil || b.NumPages == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d pages)", b.Title, *b.NumPages)
}

func daysLabel(b *domain.Book, days int) string {
	if b == nil {
		return "-"
	}
	if days == 1 {
		return b.Title + " (1 day)"
	}
	return b.Title + " (" + strconv.Itoa(days) + " days)"
}

func disparityLabel(b *domain.Book, disparity float64) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%.1f from average)", b.Title, disparity)
}

func stars(rating *int) string {
	if rating == nil {
		return "-"
	}
	return strconv.Itoa(*rating) + "/5"
}

package domain

import "time"

// GenreRank is one entry of the ranked genre list.
type GenreRank struct {
	Genre      string  `json:"genre"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // share of all tallied genre occurrences, 0-100
}

// StatsBundle is the full yearly recap for one profile.
// It is built once per request and never modified afterwards.
type StatsBundle struct {
	ProfileID string `json:"profile_id"`
	Year      int    `json:"year"`

	TotalBooks int    `json:"total_books"`
	YearBooks  int    `json:"year_books"`
	Books      []Book `json:"books"`

	AverageRating float64 `json:"average_rating"`
	TopRatedBooks []Book  `json:"top_rated_books"`

	AveragePages float64 `json:"average_pages"`
	LongestBook  *Book   `json:"longest_book"`
	ShortestBook *Book   `json:"shortest_book"`

	GenreCounts   map[string]int            `json:"genre_counts"`
	TopGenres     []GenreRank               `json:"top_genres"`
	MonthlyGenres map[string]map[string]int `json:"monthly_genres"`
	MonthlyTotals map[string]int            `json:"monthly_totals"`

	AverageReadingDays float64 `json:"average_reading_days"`
	FastestRead        *Book   `json:"fastest_read"`
	FastestReadDays    int     `json:"fastest_read_days"`
	SlowestRead        *Book   `json:"slowest_read"`
	SlowestReadDays    int     `json:"slowest_read_days"`

	DependabilityRatio float64 `json:"dependability_ratio"`
	ReadAndAddedCount  int     `json:"read_and_added_count"`
	ToReadAddedCount   int     `json:"to_read_added_count"`

	HaterMoment    *Book   `json:"hater_moment"`
	HaterDisparity float64 `json:"hater_disparity"`
	FanMoment      *Book   `json:"fan_moment"`
	FanDisparity   float64 `json:"fan_disparity"`

	MostScathingReview *Book `json:"most_scathing_review"`
	MostPositiveReview *Book `json:"most_positive_review"`
	ReviewCount        int   `json:"review_count"`

	SourceURL   string    `json:"source_url"`
	GeneratedAt time.Time `json:"generated_at"`
}

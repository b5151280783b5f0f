// Package tmdb provides a catalog.Searcher backed by The Movie Database API.
package tmdb

import "strconv"

const imageBase = "https://image.tmdb.org/t/p/"

// searchResponse is the envelope for /3/search/{tv,movie}.
type searchResponse struct {
	Page    int            `json:"page"`
	Results []searchResult `json:"results"`
}

// searchResult covers both TV and movie payload shapes; TMDB uses
// name/first_air_date for TV and title/release_date for movies.
type searchResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
}

func (r *searchResult) title() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

func (r *searchResult) year() int {
	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// detailsResponse is the payload for /3/tv/{id} and /3/movie/{id}.
type detailsResponse struct {
	searchResult
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Networks []struct {
		Name string `json:"name"`
	} `json:"networks"`
	Status           string `json:"status"`
	Runtime          int    `json:"runtime"`
	NumberOfSeasons  int    `json:"number_of_seasons"`
	NumberOfEpisodes int    `json:"number_of_episodes"`
}

func imageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return imageBase + size + path
}

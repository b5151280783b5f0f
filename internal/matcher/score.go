package matcher

import (
	"sort"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/scanner"
)

const (
	// scoreFloor is the minimum score a candidate must exceed to be kept.
	scoreFloor = 0.3
	// maxCandidates bounds the candidate list attached to each match.
	maxCandidates = 10
)

// scoreTV weighs a TV candidate: title 60%, year 20%, popularity 10%,
// rating 10%. A missing scanned year earns half the year weight rather
// than disqualifying the candidate.
func scoreTV(show *scanner.ScannedShow, c catalog.Candidate) float64 {
	score := TitleSimilarity(show.Name, c.Title) * 0.6

	switch {
	case show.Year != 0 && c.Year != 0:
		diff := show.Year - c.Year
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 {
			score += 0.2
		} else if diff <= 2 {
			score += 0.1
		}
	case show.Year == 0:
		score += 0.1
	}

	if c.Popularity > 10 {
		score += min(0.1, c.Popularity/1000)
	}
	if c.Rating > 6.0 {
		score += min(0.1, (c.Rating-6.0)/4.0)
	}
	return min(score, 1.0)
}

// scoreMovie weighs a movie candidate: title 60%, year 25%, popularity 8%,
// rating 7%. Year tolerance is tighter than TV since release dates are
// less ambiguous than air dates.
func scoreMovie(movie *scanner.ScannedMovie, c catalog.Candidate) float64 {
	score := TitleSimilarity(movie.Title, c.Title) * 0.6

	switch {
	case movie.Year != 0 && c.Year != 0:
		diff := movie.Year - c.Year
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 {
			score += 0.25
		} else if diff == 1 {
			score += 0.15
		}
	case movie.Year == 0:
		score += 0.125
	}

	if c.Popularity > 10 {
		score += min(0.08, c.Popularity/1000)
	}
	if c.Rating > 6.0 {
		score += min(0.07, (c.Rating-6.0)/4.0)
	}
	return min(score, 1.0)
}

// scoreCandidates scores every candidate, drops those at or below floor,
// and returns at most maxCandidates sorted by score descending. The sort
// is stable so ties keep the catalog's own relevance order.
func scoreCandidates(candidates []catalog.Candidate, score func(catalog.Candidate) float64, floor float64) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		s := score(c)
		if s <= floor {
			continue
		}
		scored = append(scored, ScoredCandidate{Candidate: c, Score: s})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxCandidates {
		scored = scored[:maxCandidates]
	}
	return scored
}

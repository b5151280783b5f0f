package matcher

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		title string
		year  int
		want  string
	}{
		{"Breaking Bad", 2008, "Breaking Bad 2008"},
		{"Breaking Bad", 0, "Breaking Bad"},
		{"The Office US", 0, "The Office"},
		{"Shameless UK", 2004, "Shameless 2004"},
		{"Dune 2021 [1080p]", 0, "Dune"},
		{"Heat (1995)", 1995, "Heat 1995"},
		{"Show {extras} [tag]", 0, "Show"},
	}

	for _, tt := range tests {
		if got := BuildQuery(tt.title, tt.year); got != tt.want {
			t.Errorf("BuildQuery(%q, %d) = %q, want %q", tt.title, tt.year, got, tt.want)
		}
	}
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64 // exact when 1.0, otherwise a lower bound
	}{
		{"identical", "Breaking Bad", "Breaking Bad", 1.0},
		{"case and punctuation", "breaking.bad", "Breaking Bad", 1.0},
		{"accents", "Léon", "Leon", 1.0},
		{"article noise still close", "The Wire", "Wire", 0.5},
		{"shared words", "Planet Earth II", "Planet Earth", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleSimilarity(tt.a, tt.b)
			if tt.want == 1.0 {
				if got != 1.0 {
					t.Errorf("TitleSimilarity(%q, %q) = %v, want 1.0", tt.a, tt.b, got)
				}
				return
			}
			if got < tt.want || got >= 1.0 {
				t.Errorf("TitleSimilarity(%q, %q) = %v, want in [%v, 1.0)", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTitleSimilarity_Unrelated(t *testing.T) {
	got := TitleSimilarity("Breaking Bad", "Paw Patrol")
	if got > 0.5 {
		t.Errorf("unrelated titles scored %v, want <= 0.5", got)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Breaking Bad", "breaking bad"},
		{"Léon: The Professional", "leon the professional"},
		{"  spaced   out  ", "spaced out"},
		{"It's Always Sunny!", "it s always sunny"},
	}

	for _, tt := range tests {
		if got := normalizeTitle(tt.input); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

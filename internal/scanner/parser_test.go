package scanner

import "testing"

func TestParseEpisodeFile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EpisodeInfo
		wantOK  bool
	}{
		{
			name:  "hyphen delimited with tags",
			input: "Breaking Bad - S01E01 - Pilot [1080p][GROUP].mkv",
			want: EpisodeInfo{
				Show: "Breaking Bad", Season: 1, Episode: 1, Title: "Pilot",
				Quality: "1080p", ReleaseGroup: "GROUP",
			},
			wantOK: true,
		},
		{
			name:  "hyphen delimited with brace tag",
			input: "The Wire - S03E11 - Middle Ground [720p][NTb]{extras}.mkv",
			want: EpisodeInfo{
				Show: "The Wire", Season: 3, Episode: 11, Title: "Middle Ground",
				Quality: "720p", ReleaseGroup: "NTb",
			},
			wantOK: true,
		},
		{
			name:  "space delimited",
			input: "Severance S02E05 Trojans Horse [2160p].mkv",
			want: EpisodeInfo{
				Show: "Severance", Season: 2, Episode: 5, Title: "Trojans Horse",
				Quality: "2160p",
			},
			wantOK: true,
		},
		{
			name:  "dot delimited",
			input: "The.Expanse.S05E10.Nemesis.Games.mkv",
			want: EpisodeInfo{
				Show: "The Expanse", Season: 5, Episode: 10, Title: "Nemesis Games",
			},
			wantOK: true,
		},
		{
			name:  "three digit episode",
			input: "One Piece - S01E102 - Ruins and Lost Ways.mkv",
			want: EpisodeInfo{
				Show: "One Piece", Season: 1, Episode: 102, Title: "Ruins and Lost Ways",
			},
			wantOK: true,
		},
		{
			name:  "no title",
			input: "Dark - S02E03.mkv",
			want:  EpisodeInfo{Show: "Dark", Season: 2, Episode: 3},
			wantOK: true,
		},
		{
			name:   "no match",
			input:  "random clip.mkv",
			wantOK: false,
		},
		{
			name:   "1x01 is not a strict pattern",
			input:  "Lost 1x01 Pilot.mkv",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEpisodeFile(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseEpisodeFile(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseEpisodeFile(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEpisodeFile_Deterministic(t *testing.T) {
	const input = "Breaking Bad - S01E01 - Pilot [1080p][GROUP].mkv"
	first, ok := ParseEpisodeFile(input)
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		got, ok := ParseEpisodeFile(input)
		if !ok || got != first {
			t.Fatalf("parse is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestParseEpisodeFilePermissive(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   EpisodeInfo
		wantOK bool
	}{
		{
			name:   "1x01 format",
			input:  "Lost 1x04 Walkabout.mkv",
			want:   EpisodeInfo{Show: "Lost", Season: 1, Episode: 4},
			wantOK: true,
		},
		{
			name:   "season episode words",
			input:  "Fargo Season 2 Episode 7.mkv",
			want:   EpisodeInfo{Show: "Fargo", Season: 2, Episode: 7},
			wantOK: true,
		},
		{
			name:  "loose scene naming",
			input: "the_leftovers_s02e08_1080p_web-KINGS.mkv",
			want: EpisodeInfo{
				Show: "the leftovers", Season: 2, Episode: 8,
				Quality: "1080p", ReleaseGroup: "KINGS",
			},
			wantOK: true,
		},
		{
			name:   "still no match",
			input:  "holiday footage.mp4",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEpisodeFilePermissive(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseMovieFile(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   MovieInfo
		wantOK bool
	}{
		{
			name:  "year in parens with tags",
			input: "Heat (1995) [1080p][CRiME].mkv",
			want: MovieInfo{
				Title: "Heat", Year: 1995, Quality: "1080p", ReleaseGroup: "CRiME",
			},
			wantOK: true,
		},
		{
			name:   "year in parens bare",
			input:  "Arrival (2016).mkv",
			want:   MovieInfo{Title: "Arrival", Year: 2016},
			wantOK: true,
		},
		{
			name:  "dot delimited scene name",
			input: "Inception.2010.1080p.BluRay-XYZ.mkv",
			want: MovieInfo{
				Title: "Inception", Year: 2010, Quality: "1080p", ReleaseGroup: "XYZ",
			},
			wantOK: true,
		},
		{
			name:   "no year no match",
			input:  "Inception.mkv",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMovieFile(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseMovieFile(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseMovieFile(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseShowFolder(t *testing.T) {
	name, year := ParseShowFolder("Breaking Bad (2008)")
	if name != "Breaking Bad" || year != 2008 {
		t.Errorf("got %q/%d", name, year)
	}

	name, year = ParseShowFolder("The Wire")
	if name != "The Wire" || year != 0 {
		t.Errorf("got %q/%d", name, year)
	}
}

func TestIsSeasonFolder(t *testing.T) {
	for _, ok := range []string{"Season 01", "Season 1", "season 10", "S01", "s2"} {
		if !IsSeasonFolder(ok) {
			t.Errorf("IsSeasonFolder(%q) = false, want true", ok)
		}
	}
	for _, notOK := range []string{"Specials", "Extras", "Season", "Series 1"} {
		if IsSeasonFolder(notOK) {
			t.Errorf("IsSeasonFolder(%q) = true, want false", notOK)
		}
	}
}

func TestExtractQualityAndGroup(t *testing.T) {
	tests := []struct {
		input       string
		wantQuality string
		wantGroup   string
	}{
		// Resolution outranks source even when the source token is longer.
		{"Inception.2010.1080p.BluRay-XYZ.mkv", "1080p", "XYZ"},
		// First bracket is a quality token and must not become the group.
		{"Show - S01E01 - Pilot [720p][CTU].mkv", "720p", "CTU"},
		{"Movie (2020) {FRAME}.mkv", "", "FRAME"},
		{"Show.S01E01.HDTV.mkv", "hdtv", ""},
		{"plain file.mkv", "", ""},
	}

	for _, tt := range tests {
		quality, group := ExtractQualityAndGroup(tt.input)
		if quality != tt.wantQuality || group != tt.wantGroup {
			t.Errorf("ExtractQualityAndGroup(%q) = %q/%q, want %q/%q",
				tt.input, quality, group, tt.wantQuality, tt.wantGroup)
		}
	}
}

func TestIsVideoFile(t *testing.T) {
	if !IsVideoFile("/tv/show/ep.mkv") || !IsVideoFile("ep.MP4") {
		t.Error("expected video extensions to be recognized")
	}
	if IsVideoFile("notes.txt") || IsVideoFile("ep.nfo") {
		t.Error("expected non-video extensions to be rejected")
	}
}

// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package search

import (
	"testing"

	"github.com/tomtom215/phonographus/internal/models"
)

func scoredTrack(title, owner, downloadURL string) models.Track {
	return models.Track{
		ID:          "1",
		Title:       title,
		User:        models.TrackUser{Username: owner},
		DownloadURL: downloadURL,
	}
}

func TestScoreExactTitleMatch(t *testing.T) {
	s := NewScorer(45)

	track := scoredTrack("Wakhra Swag (Club Remix)", "djnyk", "")
	if got := s.Score("wakhra swag", &track); got != ScoreExact {
		t.Errorf("Expected exact match score %d, got %d", ScoreExact, got)
	}
}

func TestScoreExactMatchIgnoresDownloadBonus(t *testing.T) {
	s := NewScorer(45)

	track := scoredTrack("Wakhra Swag (Club Remix)", "djnyk", "https://dl.example/1")
	if got := s.Score("wakhra swag", &track); got != ScoreExact {
		t.Errorf("Expected exact match to stay at %d for downloadable track, got %d", ScoreExact, got)
	}
}

func TestScoreAllWordsReordered(t *testing.T) {
	s := NewScorer(45)

	track := scoredTrack("Swag Wakhra Mashup", "djchetas", "")
	if got := s.Score("wakhra swag", &track); got != ScoreAllWords {
		t.Errorf("Expected reordered full match score %d, got %d", ScoreAllWords, got)
	}
}

func TestScoreAllWordsIgnoresDownloadBonus(t *testing.T) {
	s := NewScorer(45)

	track := scoredTrack("Swag Wakhra Mashup", "djchetas", "https://dl.example/1")
	if got := s.Score("wakhra swag", &track); got != ScoreAllWords {
		t.Errorf("Expected reordered full match to stay at %d for downloadable track, got %d", ScoreAllWords, got)
	}
}

func TestScoreAllWordsSpansTitleAndOwner(t *testing.T) {
	s := NewScorer(45)

	// "wakhra" sits in the title, "djnyk" in the uploader name.
	track := scoredTrack("Wakhra Anthem", "djnyk", "")
	if got := s.Score("wakhra djnyk", &track); got != ScoreAllWords {
		t.Errorf("Expected match across title and owner to score %d, got %d", ScoreAllWords, got)
	}
}

func TestScoreAllWordsRequiresEveryWord(t *testing.T) {
	s := NewScorer(45)

	track := scoredTrack("Wakhra Anthem", "djnyk", "")
	got := s.Score("wakhra missing", &track)
	if got >= ScoreAllWords {
		t.Errorf("Expected partial multi-word match to fall to fuzzy tier, got %d", got)
	}
}

func TestScoreFuzzyTokenSubset(t *testing.T) {
	s := NewScorer(45)

	// The query token set is contained in the combined token set, which
	// maxes the token-set ratio without triggering the exact tier.
	track := scoredTrack("Some Party Mix", "djnyk", "")
	if got := s.Score("djnyk", &track); got != 100 {
		t.Errorf("Expected token-subset fuzzy score 100, got %d", got)
	}
}

func TestScoreFuzzyDownloadBonus(t *testing.T) {
	s := NewScorer(45)

	plain := scoredTrack("Some Party Mix", "djnyk", "")
	downloadable := scoredTrack("Some Party Mix", "djnyk", "https://dl.example/1")

	plainScore := s.Score("djnyk", &plain)
	downloadScore := s.Score("djnyk", &downloadable)

	if downloadScore != plainScore+DownloadBonus {
		t.Errorf("Expected download bonus of exactly %d, got %d vs %d",
			DownloadBonus, downloadScore, plainScore)
	}
	// The bonus can push a perfect fuzzy score past 100.
	if downloadScore != 105 {
		t.Errorf("Expected boosted token-subset score 105, got %d", downloadScore)
	}
}

func TestScoreJunkStaysBelowFloor(t *testing.T) {
	s := NewScorer(45)

	track := scoredTrack("zzxqj vvwpk", "qqnn", "")
	got := s.Score("wakhra swag", &track)
	if s.Relevant(got) {
		t.Errorf("Expected unrelated track to score at or below the floor, got %d", got)
	}
}

func TestRelevantFloorIsExclusive(t *testing.T) {
	s := NewScorer(45)

	if s.Relevant(45) {
		t.Error("Expected score equal to the floor to be junk")
	}
	if !s.Relevant(46) {
		t.Error("Expected score above the floor to be relevant")
	}
	if !s.Relevant(100) {
		t.Error("Expected perfect score to be relevant")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Wakhra Swag  ", "wakhra swag"},
		{"DJ NYK", "dj nyk"},
		{"already normal", "already normal"},
		{"\tTabs And Newlines\n", "tabs and newlines"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQueryLengthCountsRunes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"ab", 2},
		{"a", 1},
		{"", 0},
		{"éé", 2}, // two runes, four bytes
		{"नमस्ते", 6},
	}

	for _, tt := range tests {
		if got := QueryLength(tt.in); got != tt.want {
			t.Errorf("QueryLength(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func BenchmarkScore(b *testing.B) {
	s := NewScorer(45)
	track := scoredTrack("Wakhra Swag Club Anthem Extended Mix", "djshadowdubai", "https://dl.example/1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Score("swag anthem", &track)
	}
}

package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// Common filler words to detect. Multi-word phrases are matched as whole
// phrases, so "like" inside "unlike" never counts.
var fillerWords = []string{
	"um",
	"uh",
	"like",
	"you know",
	"so",
	"actually",
	"basically",
	"literally",
	"right",
	"okay",
	"well",
	"I mean",
	"kind of",
	"sort of",
}

var fillerPatterns = buildFillerPatterns()

func buildFillerPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(fillerWords))
	for _, word := range fillerWords {
		patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return patterns
}

// WordsPerMinute computes the speaking rate, rounded to the nearest
// integer. Zero duration yields zero.
func WordsPerMinute(text string, durationSeconds float64) int {
	if durationSeconds <= 0 {
		return 0
	}
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) / durationSeconds * 60))
}

// CountFillerWords tallies filler word occurrences in the text, most
// frequent first.
func CountFillerWords(text string) []entities.FillerWordCount {
	lower := strings.ToLower(text)

	var counts []entities.FillerWordCount
	for _, word := range fillerWords {
		matches := fillerPatterns[word].FindAllString(lower, -1)
		if len(matches) > 0 {
			counts = append(counts, entities.FillerWordCount{Word: word, Count: len(matches)})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// PaceScore buckets the speaking rate. The ideal range is 120-150 wpm.
func PaceScore(wpm int) int {
	switch {
	case wpm >= 120 && wpm <= 150:
		return 95
	case wpm > 150 && wpm <= 170:
		return 85
	case wpm >= 100 && wpm < 120:
		return 85
	case wpm > 170:
		return 70
	case wpm < 100:
		return 70
	}
	return 80
}

// PaceFeedback describes the speaking rate in one sentence.
func PaceFeedback(wpm int) string {
	switch {
	case wpm >= 120 && wpm <= 150:
		return "Excellent pace. You're speaking at an ideal rate for audience comprehension."
	case wpm > 150:
		return "Your pace is slightly fast. Consider slowing down to improve audience comprehension."
	default:
		return "Your pace is slightly slow. Try to speak a bit faster to maintain audience engagement."
	}
}

// FillerScore buckets the filler word rate per spoken minute.
func FillerScore(fillerPerMinute float64) int {
	switch {
	case fillerPerMinute <= 1:
		return 95
	case fillerPerMinute <= 3:
		return 85
	case fillerPerMinute <= 5:
		return 75
	case fillerPerMinute <= 8:
		return 65
	default:
		return 55
	}
}

// FillerFeedback describes the filler word rate in one sentence.
func FillerFeedback(fillerPerMinute float64) string {
	switch {
	case fillerPerMinute <= 1:
		return "Excellent! You used very few filler words."
	case fillerPerMinute <= 3:
		return "Good job. You used some filler words, but not excessively."
	case fillerPerMinute <= 5:
		return "You used a moderate number of filler words. Try to replace them with pauses."
	default:
		return "You used filler words frequently. Practice pausing instead of using filler words."
	}
}

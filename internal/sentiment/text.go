package sentiment

import (
	"math"
	"strings"
	"unicode"
)

var positiveKeywords = []string{
	"beat", "surge", "soar", "jump", "rally", "gain", "rise", "record", "strong",
	"growth", "profit", "upgrade", "bullish", "outperform", "boost", "exceed",
	"breakthrough", "expand", "win", "approv", "optimis", "rebound", "innovat",
}

var negativeKeywords = []string{
	"miss", "plunge", "drop", "fall", "decline", "loss", "weak", "downgrade",
	"bearish", "underperform", "cut", "lawsuit", "probe", "recall", "layoff",
	"warn", "slump", "crash", "fraud", "delay", "concern", "risk", "tumble",
}

// TextScore scores free text. Each word containing a positive keyword adds 0.1
// and each word containing a negative keyword subtracts 0.1; the sum is divided
// by the square root of the number of matched words and clamped to [-1, 1].
// matched is 0 when no word hit either list, in which case the text has no score.
func TextScore(text string) (score float64, matched int) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sum float64
	for _, w := range words {
		pos := containsAny(w, positiveKeywords)
		neg := containsAny(w, negativeKeywords)
		if pos {
			sum += 0.1
		}
		if neg {
			sum -= 0.1
		}
		if pos || neg {
			matched++
		}
	}
	if matched == 0 {
		return 0, 0
	}
	return clamp(sum / math.Sqrt(float64(matched))), matched
}

func containsAny(word string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(word, k) {
			return true
		}
	}
	return false
}

package journal

import (
	"regexp"
	"strings"
)

// nonWord matches runs of characters outside [A-Za-z0-9_].
var nonWord = regexp.MustCompile(`\W+`)

// stopwords are function words ignored when comparing prompts, plus the
// single-letter remnants left by splitting contractions ("don't" -> "don", "t").
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the and or a an of to in on at for with by is it as that this was were are be
		from but so if then than which who what when where how has have had do does did
		can could should would will just about into out up down over under again more
		most some such no nor not only own same too very
		s t d ll m o re ve y`) {
		stopwords[w] = struct{}{}
	}
}

// tokenSet returns the distinct lower-cased tokens of s that are not in stop.
func tokenSet(s string, stop map[string]struct{}) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range nonWord.Split(strings.ToLower(s), -1) {
		if tok == "" {
			continue
		}
		if _, skip := stop[tok]; skip {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Similarity returns the word overlap of a and b: the number of shared
// non-stopword tokens divided by the size of the larger token set.
// It is 0 when either side has no non-stopword tokens.
func Similarity(a, b string) float64 {
	return overlap(a, b, stopwords)
}

func overlap(a, b string, stop map[string]struct{}) float64 {
	as, bs := tokenSet(a, stop), tokenSet(b, stop)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	shared := 0
	for tok := range as {
		if _, ok := bs[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(as), len(bs)))
}

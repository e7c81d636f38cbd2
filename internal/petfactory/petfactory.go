// Package petfactory derives a hatched pet's species and personality from the
// conversation an egg had before hatching.
package petfactory

import (
	"strings"
)

// DefaultName is used for every pet until names are generated.
const DefaultName = "my own animal"

type Result struct {
	Species     string
	Personality string
}

type rule struct {
	keywords []string
	result   Result
}

// rules are evaluated in order; the first rule with any keyword in the text wins.
// Matching is by substring, so English keywords must not hide inside common
// words ("tree" in "street", "wave" in "microwave").
var rules = []rule{
	{
		keywords: []string{"forest", "woods", "숲", "나무", "초록"},
		result:   Result{Species: "forest fox", Personality: "quiet, warm, forest-scented companion"},
	},
	{
		keywords: []string{"sea", "ocean", "water", "바다", "물", "파도"},
		result:   Result{Species: "sea fish", Personality: "calm, drifting with gentle waves, emotionally rich"},
	},
	{
		keywords: []string{"fire", "flame", "dragon", "불", "화염", "용", "드래곤", "불꽃"},
		result:   Result{Species: "small dragon", Personality: "fiery, energetic, loves challenges"},
	},
	{
		keywords: []string{"sky", "star", "space", "하늘", "별", "우주"},
		result:   Result{Species: "starlight cat", Personality: "imaginative, dreamy, starlit"},
	},
}

var fallback = Result{Species: "mystery creature", Personality: "undefined, personality emerges over time."}

// Classify matches text case-insensitively against the rule table.
func Classify(text string) Result {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if containsAny(lower, r.keywords) {
			return r.result
		}
	}
	return fallback
}

// FromConversation joins message bodies with a space, regardless of speaker,
// and classifies the result.
func FromConversation(messages []string) Result {
	return Classify(strings.Join(messages, " "))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Package emoji converts between unicode emoji, :shortcode: aliases and the
// identifiers Discord expects when adding a reaction.
package emoji

import (
	"strings"

	kemoji "github.com/kyokomi/emoji/v2"
)

const variationSelector = "\ufe0f"

// Emojize replaces :shortcode: aliases in s with unicode emoji.
func Emojize(s string) string {
	if !strings.Contains(s, ":") {
		return s
	}
	return strings.TrimSpace(kemoji.Sprint(s))
}

// Demojize returns the :shortcode: alias for a single unicode emoji, or s
// unchanged when no alias is known.
func Demojize(s string) string {
	s = strings.TrimSpace(s)
	rev := kemoji.RevCodeMap()

	for _, candidate := range []string{s, strings.TrimSuffix(s, variationSelector), s + variationSelector} {
		if codes, ok := rev[candidate]; ok && len(codes) > 0 {
			return codes[0]
		}
	}
	return s
}

// ReactionID returns the string MessageReactionAdd expects: unicode for
// standard emoji and name:id for custom guild emoji written as <:name:id>
// or <a:name:id>.
func ReactionID(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
		inner = strings.TrimPrefix(inner, "a")
		return strings.TrimPrefix(inner, ":")
	}
	return Emojize(s)
}

// Package tokenize splits casual chat text into word tokens.
package tokenize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"github.com/rs/zerolog/log"
)

// Tokenizer splits text into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Casual tokenizes with prose and then restores the pieces chat text keeps
// whole: contractions and possessives (can't, linus's) and emoticons (:) <3).
// Trailing punctuation is still split off words.
type Casual struct{}

func New() *Casual {
	return &Casual{}
}

var (
	emoticonRE = regexp.MustCompile(`^(?:[<>]?[:;=8][\-o*']?[)\](\[dDpP/:}{@|\\]|[)\](\[dDpP/:}{@|\\][\-o*']?[:;=8][<>]?|</?3)$`)

	// same normalization prose applies before splitting
	quotes = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
		"&rsquo;", "'")

	clitics = map[string]struct{}{
		"n't": {}, "'s": {}, "'ll": {}, "'re": {}, "'m": {}, "'ve": {}, "'d": {},
	}
)

func (Casual) Tokenize(text string) []string {
	text = quotes.Replace(text)

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Tokenizer failed, falling back to whitespace split")
		return strings.Fields(text)
	}

	tokens := doc.Tokens()
	pieces := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		pieces = append(pieces, tok.Text)
	}
	return regroup(strings.Fields(text), pieces)
}

// regroup walks the whitespace chunks of the input alongside prose's pieces,
// which never cross a chunk boundary. A chunk prose did not reproduce exactly
// is kept whole.
func regroup(chunks, pieces []string) []string {
	out := make([]string, 0, len(pieces))
	i := 0
	for _, chunk := range chunks {
		var group []string
		rest := chunk
		for i < len(pieces) && rest != "" && strings.HasPrefix(rest, pieces[i]) {
			group = append(group, pieces[i])
			rest = rest[len(pieces[i]):]
			i++
		}

		switch {
		case rest != "", emoticonRE.MatchString(chunk):
			out = append(out, chunk)
		default:
			out = append(out, joinClitics(group)...)
		}
	}
	return out
}

// joinClitics glues n't, 's and friends back onto the preceding word.
func joinClitics(group []string) []string {
	out := group[:0:0]
	for _, p := range group {
		if _, ok := clitics[strings.ToLower(p)]; ok && len(out) > 0 && endsWithLetter(out[len(out)-1]) {
			out[len(out)-1] += p
			continue
		}
		out = append(out, p)
	}
	return out
}

func endsWithLetter(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsLetter(r)
}

// Lower returns a lower-cased copy of tokens.
func Lower(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToLower(t)
	}
	return out
}

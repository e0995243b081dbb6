package session

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// WordFromLink extracts the headword an article anchor points to. Anchors
// carry the bare word, possibly percent-encoded.
func WordFromLink(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	var word string
	if u, err := url.Parse(href); err == nil {
		switch {
		case u.Opaque != "":
			word = unescape(u.Opaque)
		case u.Path != "":
			word = u.Path
		default:
			word = u.Host
		}
	} else {
		word = unescape(href)
	}

	word = strings.TrimSpace(strings.Trim(word, "/"))
	return word, word != ""
}

func unescape(s string) string {
	if dec, err := url.PathUnescape(s); err == nil {
		return dec
	}
	return s
}

// FollowLink navigates to the word href points to and commits it as a
// search. It reports false for an anchor without a word.
func (s *Session) FollowLink(ctx context.Context, href string) (State, bool) {
	word, ok := WordFromLink(href)
	if !ok {
		return s.snapshot(), false
	}
	st := s.OnQueryChanged(ctx, word)
	s.Commit(ctx, word)
	return st, true
}

var (
	speechRussian = language.MustParse("ru-RU")
	speechEnglish = language.AmericanEnglish
)

// SpeechHint tells a speech synthesizer what to say and in which language.
type SpeechHint struct {
	Text      string
	IsRussian bool
	Language  language.Tag
}

// SpeechHintFor returns the hint for pronouncing the headword of e.
func SpeechHintFor(e domain.Entry) SpeechHint {
	h := SpeechHint{
		Text:      domain.StripStressMarks(e.Word),
		IsRussian: e.IsRussian(),
		Language:  speechEnglish,
	}
	if h.IsRussian {
		h.Language = speechRussian
	}
	return h
}

// SpeechHint returns the hint for the row with word, if present.
func (s *Session) SpeechHint(word string) (SpeechHint, bool) {
	e, ok := s.entry(word)
	if !ok {
		return SpeechHint{}, false
	}
	return SpeechHintFor(e), true
}

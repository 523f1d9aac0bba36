package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// PhraseEvent is produced by the speech pipeline for every recognized phrase.
type PhraseEvent struct {
	Phrase     string    `json:"phrase"`
	Language   Language  `json:"language"`
	ReceivedAt time.Time `json:"received_at"`
}

// IdentityEvent is produced by the face pipeline once per evaluated frame
// with a match.
type IdentityEvent struct {
	User       UserName  `json:"user"`
	ReceivedAt time.Time `json:"received_at"`
}

var languageFormat = regexp.MustCompile(`^[a-z]{2}-[a-z]{2}$`)

func (e PhraseEvent) Validate() error {
	if NormalizePhrase(e.Phrase) == "" {
		return fmt.Errorf("%w: empty phrase", ErrInvalidEvent)
	}
	if e.Language != "" && !languageFormat.MatchString(string(e.Language)) {
		return fmt.Errorf("%w: language %q must match ll-ll", ErrInvalidEvent, e.Language)
	}
	return nil
}

func (e IdentityEvent) Validate() error {
	if e.User.Normalize() == "" {
		return fmt.Errorf("%w: empty user", ErrInvalidEvent)
	}
	return nil
}

// ValidLanguage reports whether value looks like an installed-language
// identifier (ll-ll).
func ValidLanguage(value string) bool {
	return languageFormat.MatchString(value)
}

// NormalizePhrase lower-cases the phrase, drops punctuation and collapses
// whitespace, matching the keyword spotter output.
func NormalizePhrase(phrase string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, phrase)
	return strings.Join(strings.Fields(cleaned), " ")
}

// In-process broker topics and event names.
const (
	TopicPhraseEvents    = "phrase_events"
	TopicIdentityEvents  = "identity_events"
	TopicDispatchEvents  = "dispatch_events"
	TopicTelemetryEvents = "telemetry_events"

	EventPhraseRecognized   = "phrase_recognized"
	EventIdentityRecognized = "identity_recognized"
	EventTelemetryReceived  = "telemetry_received"
)

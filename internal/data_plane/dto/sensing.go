package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
)

var ErrEmptyLine = errors.New("sensing line carries no event")

// SensingLine is one JSON line written by a recognizer process. Speech
// recognizers fill Phrase and Language, face recognizers fill User.
type SensingLine struct {
	Phrase   string `json:"phrase,omitempty"`
	Language string `json:"language,omitempty"`
	User     string `json:"user,omitempty"`
}

func DecodeSensingLine(raw []byte) (SensingLine, error) {
	var line SensingLine
	if err := json.Unmarshal(raw, &line); err != nil {
		return SensingLine{}, fmt.Errorf("decoding sensing line: %w", err)
	}
	if line.Phrase == "" && line.User == "" {
		return SensingLine{}, ErrEmptyLine
	}
	return line, nil
}

func (l SensingLine) PhraseEvent(receivedAt time.Time) domain.PhraseEvent {
	return domain.PhraseEvent{
		Phrase:     l.Phrase,
		Language:   domain.Language(l.Language),
		ReceivedAt: receivedAt,
	}
}

func (l SensingLine) IdentityEvent(receivedAt time.Time) domain.IdentityEvent {
	return domain.IdentityEvent{
		User:       domain.UserName(l.User),
		ReceivedAt: receivedAt,
	}
}

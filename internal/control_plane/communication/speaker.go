package communication

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/usecases"
)

const (
	DefaultSpeechBinary = "espeak"
	DefaultSpeechSpeed  = 150
)

func NewEspeakSpeaker(spawner usecases.ProcessSpawner, binary string, speed int) *EspeakSpeaker {
	if binary == "" {
		binary = DefaultSpeechBinary
	}
	if speed <= 0 {
		speed = DefaultSpeechSpeed
	}
	return &EspeakSpeaker{
		spawner: spawner,
		binary:  binary,
		speed:   speed,
	}
}

var _ usecases.Speaker = (*EspeakSpeaker)(nil)

// EspeakSpeaker runs the text to speech binary detached, so playback never
// holds up the caller.
type EspeakSpeaker struct {
	spawner usecases.ProcessSpawner
	binary  string
	speed   int
}

func (s *EspeakSpeaker) Say(ctx context.Context, text string, language domain.Language) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	argv := []string{s.binary, "-s", strconv.Itoa(s.speed), text}
	if language != "" {
		argv = append(argv, "-v", language.String())
	}

	if err := s.spawner.Spawn(ctx, argv); err != nil {
		return fmt.Errorf("speaking response: %w", err)
	}
	return nil
}

package dto

import (
	"regexp"
	"strings"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
)

// Devices answer a "get" action on room/position/peripheral[/subtype] by
// publishing the value on the same topic with a trailing /get.
var telemetryTopicRegex = regexp.MustCompile(`^([^/]+)/([^/]+)/([^/]+)(?:/([^/]+))?/get$`)

type TelemetryTopic struct {
	Room       string
	Position   string
	Peripheral string
	Subtype    string
}

func ParseTelemetryTopic(topic string) (TelemetryTopic, bool) {
	match := telemetryTopicRegex.FindStringSubmatch(topic)
	if match == nil {
		return TelemetryTopic{}, false
	}
	return TelemetryTopic{
		Room:       match[1],
		Position:   match[2],
		Peripheral: match[3],
		Subtype:    match[4],
	}, true
}

func (t TelemetryTopic) Reading(topic string, payload []byte, receivedAt time.Time) domain.TelemetryReading {
	return domain.TelemetryReading{
		Topic:      topic,
		Room:       t.Room,
		Position:   t.Position,
		Peripheral: t.Peripheral,
		Subtype:    t.Subtype,
		Value:      strings.TrimSpace(string(payload)),
		ReceivedAt: receivedAt,
	}
}

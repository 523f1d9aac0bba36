package domain

import "strings"

const TopicSeparator = "/"

// BuildTopic maps a peripheral location to its MQTT topic:
// room/position/peripheral[/subtype], every segment lower-cased with spaces
// replaced by underscores. Segments are expected to be validated upstream.
func BuildTopic(room, position, peripheral, subtype string) string {
	segments := []string{
		normalizeSegment(room),
		normalizeSegment(position),
		normalizeSegment(peripheral),
	}
	if s := normalizeSegment(subtype); s != "" {
		segments = append(segments, s)
	}
	return strings.Join(segments, TopicSeparator)
}

func normalizeSegment(segment string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(segment)), " ", "_")
}

package domain

import "time"

// Device is a microcontroller installed at a room position.
type Device struct {
	Room                string
	Position            string
	Installed           bool
	ExternalPeripherals []string
}

// TelemetryTopics returns the MQTT filters where the device answers "get"
// actions.
func (d Device) TelemetryTopics() []string {
	base := normalizeSegment(d.Room) + TopicSeparator + normalizeSegment(d.Position)
	return []string{
		base + "/+/get",
		base + "/+/+/get",
	}
}

// TelemetryReading is the last value a peripheral reported.
type TelemetryReading struct {
	Topic      string    `json:"topic"`
	Room       string    `json:"room"`
	Position   string    `json:"position"`
	Peripheral string    `json:"peripheral"`
	Subtype    string    `json:"subtype,omitempty"`
	Value      string    `json:"value"`
	ReceivedAt time.Time `json:"received_at"`
}

// TelemetryPoll asks a peripheral for its state on a cron schedule.
type TelemetryPoll struct {
	Schedule   string
	Room       string
	Position   string
	Peripheral string
	Subtype    string
}

// Topic is where the "get" action is published.
func (p TelemetryPoll) Topic() string {
	return BuildTopic(p.Room, p.Position, p.Peripheral, p.Subtype)
}

const TelemetryGetAction = "get"

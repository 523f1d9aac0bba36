package internal

import "time"

type PhraseRequest struct {
	Phrase   string `json:"phrase"`
	Language string `json:"language"`
}

type IdentityRequest struct {
	User string `json:"user"`
}

type AcceptedResponse struct {
	Topic      string    `json:"topic"`
	ReceivedAt time.Time `json:"received_at"`
}

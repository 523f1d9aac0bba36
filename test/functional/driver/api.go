package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) PostPhrase(phrase, language string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"phrase":   phrase,
		"language": language,
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/phrases", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) PostIdentity(user string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{"user": user})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/identities", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) ListPending() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/pending", d.baseURL))
}

func (d *APIDriver) ListJournal(limit int) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/journal?limit=%d", d.baseURL, limit))
}

package steps

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecotronix-hub/test/functional/driver"
)

const (
	_eventuallyTimeout = 2 * time.Second
	_eventuallyTick    = 20 * time.Millisecond
)

func (fc *FeatureContext) theHubIsRunningWithACommandTimeoutOf(timeout string) error {
	d, err := time.ParseDuration(strings.TrimSpace(timeout))
	if err != nil {
		return err
	}

	hub, err := driver.StartHub(driver.HubOpts{
		HomeFile:       fc.homeFile,
		CommandTimeout: d,
		SweepInterval:  d / 10,
	})
	if err != nil {
		return fmt.Errorf("starting hub: %w", err)
	}
	fc.hub = hub
	return nil
}

func (fc *FeatureContext) phraseIsHeardIn(phrase, language string) error {
	resp, err := fc.hub.API.PostPhrase(phrase, language)
	fc.require.NoError(err)
	fc.response = resp
	fc.require.Equal(http.StatusAccepted, resp.StatusCode)
	return nil
}

func (fc *FeatureContext) phraseIsHeardWithoutALanguage(phrase string) error {
	return fc.phraseIsHeardIn(phrase, "")
}

func (fc *FeatureContext) userIsRecognized(user string) error {
	resp, err := fc.hub.API.PostIdentity(user)
	fc.require.NoError(err)
	fc.response = resp
	fc.require.Equal(http.StatusAccepted, resp.StatusCode)
	return nil
}

func (fc *FeatureContext) thereShouldBePendingCommands(count int) error {
	fc.require.Eventually(func() bool {
		return fc.hub.PendingCount() == count
	}, _eventuallyTimeout, _eventuallyTick, "expected %d pending commands", count)
	return nil
}

func (fc *FeatureContext) thePendingListShouldReport(count int) error {
	resp, err := fc.hub.API.ListPending()
	fc.require.NoError(err)
	fc.require.Equal(http.StatusOK, resp.StatusCode)

	var data map[string]any
	fc.require.NoError(fc.decodeBody(resp.Body, &data))
	fc.require.EqualValues(count, data["total"])
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) payloadShouldBePublishedTo(payload, topic string) error {
	fc.require.Eventually(func() bool {
		published := fc.hub.Recorder.Published()
		return len(published) == 1 && published[0].Topic == topic && published[0].Payload == payload
	}, _eventuallyTimeout, _eventuallyTick, "expected a single %q publish on %s", payload, topic)
	return nil
}

func (fc *FeatureContext) nothingShouldBePublished() error {
	fc.require.Never(func() bool {
		return len(fc.hub.Recorder.Published()) > 0
	}, time.Second, _eventuallyTick)
	return nil
}

func (fc *FeatureContext) responseShouldBeSpoken(text string) error {
	return fc.responseShouldBeSpokenIn(text, "")
}

// An empty language accepts any voice.
func (fc *FeatureContext) responseShouldBeSpokenIn(text, language string) error {
	fc.require.Eventually(func() bool {
		for _, spoken := range fc.hub.Recorder.Spoken() {
			if spoken.Text == text && (language == "" || spoken.Language.String() == language) {
				return true
			}
		}
		return false
	}, _eventuallyTimeout, _eventuallyTick, "expected %q to be spoken", text)
	return nil
}

func (fc *FeatureContext) aLocalCommandShouldBeStarted() error {
	fc.require.Eventually(func() bool {
		return len(fc.hub.Recorder.Invocations()) == 1
	}, _eventuallyTimeout, _eventuallyTick, "expected one local invocation")
	return nil
}

func (fc *FeatureContext) theJournalShouldContainTheOutcomes(outcomes string) error {
	expected := strings.Split(outcomes, ",")
	for i := range expected {
		expected[i] = strings.TrimSpace(expected[i])
	}

	fc.require.Eventually(func() bool {
		resp, err := fc.hub.API.ListJournal(50)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}

		var data struct {
			Data []struct {
				Outcome string `json:"outcome"`
			} `json:"data"`
		}
		if err := fc.decodeBody(resp.Body, &data); err != nil {
			return false
		}

		// Newest entries come first.
		actual := make([]string, 0, len(data.Data))
		for i := len(data.Data) - 1; i >= 0; i-- {
			actual = append(actual, data.Data[i].Outcome)
		}
		return strings.Join(actual, ",") == strings.Join(expected, ",")
	}, _eventuallyTimeout, _eventuallyTick, "unexpected journal outcomes, want %v", expected)
	return nil
}

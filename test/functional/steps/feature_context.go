package steps

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"ecotronix-hub/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

type FeatureContext struct {
	homeFile     string
	hub          *driver.Hub
	response     *http.Response
	responseData map[string]any
	require      *require.Assertions
	t            godog.TestingT
}

func NewFeatureContext(homeFile string) *FeatureContext {
	return &FeatureContext{homeFile: homeFile}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)

	// Hub steps
	ctx.Given(`^the hub is running with a command timeout of (.*)$`, fc.theHubIsRunningWithACommandTimeoutOf)
	ctx.When(`^"([^"]*)" is heard in "([^"]*)"$`, fc.phraseIsHeardIn)
	ctx.When(`^"([^"]*)" is heard without a language$`, fc.phraseIsHeardWithoutALanguage)
	ctx.When(`^"([^"]*)" is recognized$`, fc.userIsRecognized)

	// Dispatch steps
	ctx.Then(`^there should be (\d+) pending commands?$`, fc.thereShouldBePendingCommands)
	ctx.Then(`^the pending list should report (\d+) commands?$`, fc.thePendingListShouldReport)
	ctx.Then(`^"([^"]*)" should be published to "([^"]*)"$`, fc.payloadShouldBePublishedTo)
	ctx.Then(`^nothing should be published$`, fc.nothingShouldBePublished)
	ctx.Then(`^"([^"]*)" should be spoken$`, fc.responseShouldBeSpoken)
	ctx.Then(`^"([^"]*)" should be spoken in "([^"]*)"$`, fc.responseShouldBeSpokenIn)
	ctx.Then(`^a local command should be started$`, fc.aLocalCommandShouldBeStarted)
	ctx.Then(`^the journal should contain the outcomes "([^"]*)"$`, fc.theJournalShouldContainTheOutcomes)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if fc.hub != nil {
			fc.hub.Stop()
			fc.hub = nil
		}
		return ctx, err
	})
}

func (fc *FeatureContext) reset() {
	fc.response = nil
	fc.responseData = nil
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(target)
}

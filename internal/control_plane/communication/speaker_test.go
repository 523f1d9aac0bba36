package communication_test

import (
	"context"
	"errors"

	"ecotronix-hub/internal/control_plane/communication"
	mockusecases "ecotronix-hub/test/unit/doubles/control_plane/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("EspeakSpeaker", func() {
	var (
		ctrl    *gomock.Controller
		spawner *mockusecases.MockProcessSpawner
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		spawner = mockusecases.NewMockProcessSpawner(ctrl)
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.It("should spawn espeak with speed, text and voice", func() {
		speaker := communication.NewEspeakSpeaker(spawner, "", 0)
		spawner.EXPECT().Spawn(gomock.Any(), []string{"espeak", "-s", "150", "door opened", "-v", "en-us"}).Return(nil)

		gomega.Expect(speaker.Say(ctx, "door opened", "en-us")).To(gomega.Succeed())
	})

	ginkgo.It("should leave the voice to the binary when no language is given", func() {
		speaker := communication.NewEspeakSpeaker(spawner, "/usr/bin/espeak-ng", 120)
		spawner.EXPECT().Spawn(gomock.Any(), []string{"/usr/bin/espeak-ng", "-s", "120", "hello"}).Return(nil)

		gomega.Expect(speaker.Say(ctx, " hello ", "")).To(gomega.Succeed())
	})

	ginkgo.It("should stay quiet for empty responses", func() {
		speaker := communication.NewEspeakSpeaker(spawner, "", 0)

		gomega.Expect(speaker.Say(ctx, "   ", "en-us")).To(gomega.Succeed())
	})

	ginkgo.It("should report spawn failures", func() {
		speaker := communication.NewEspeakSpeaker(spawner, "", 0)
		spawner.EXPECT().Spawn(gomock.Any(), gomock.Any()).Return(errors.New("executable file not found"))

		gomega.Expect(speaker.Say(ctx, "hi", "en-us")).To(gomega.MatchError(gomega.ContainSubstring("speaking response")))
	})
})

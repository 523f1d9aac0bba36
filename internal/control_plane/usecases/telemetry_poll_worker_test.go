package usecases_test

import (
	"context"
	"errors"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/usecases"
	mockusecases "ecotronix-hub/test/unit/doubles/control_plane/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("TelemetryPollWorker", func() {
	var (
		ctrl      *gomock.Controller
		publisher *mockusecases.MockDevicePublisher
		clock     *fakeClock
		ticker    *time.Ticker
		polls     []domain.TelemetryPoll
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		publisher = mockusecases.NewMockDevicePublisher(ctrl)
		clock = newFakeClock(time.Date(2024, 3, 1, 20, 0, 10, 0, time.UTC))
		ticker = time.NewTicker(time.Hour)
		polls = []domain.TelemetryPoll{
			{Schedule: "*/5 * * * *", Room: "Living Room", Position: "Ceiling", Peripheral: "Temperature"},
			{Schedule: "30 * * * *", Room: "Kitchen", Position: "Wall", Peripheral: "Light", Subtype: "Level"},
		}
	})

	ginkgo.AfterEach(func() {
		ticker.Stop()
		ctrl.Finish()
	})

	ginkgo.It("should fail on malformed schedules", func() {
		_, err := usecases.NewTelemetryPollWorker(ticker, []domain.TelemetryPoll{{Schedule: "every minute"}}, publisher, clock.Now)

		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.It("should publish get actions for due polls only", func() {
		worker, err := usecases.NewTelemetryPollWorker(ticker, polls, publisher, clock.Now)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		publisher.EXPECT().Publish(gomock.Any(), "living_room/ceiling/temperature", domain.TelemetryGetAction).Return(nil)

		gomega.Expect(worker.Evaluate(context.Background())).To(gomega.Equal(1))
	})

	ginkgo.It("should evaluate each minute once", func() {
		worker, err := usecases.NewTelemetryPollWorker(ticker, polls, publisher, clock.Now)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		gomega.Expect(worker.Evaluate(context.Background())).To(gomega.Equal(1))
		clock.Advance(30 * time.Second)
		gomega.Expect(worker.Evaluate(context.Background())).To(gomega.BeZero())
	})

	ginkgo.It("should include the subtype in the poll topic", func() {
		clock = newFakeClock(time.Date(2024, 3, 1, 20, 30, 0, 0, time.UTC))
		worker, err := usecases.NewTelemetryPollWorker(ticker, polls, publisher, clock.Now)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		publisher.EXPECT().Publish(gomock.Any(), "living_room/ceiling/temperature", "get").Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), "kitchen/wall/light/level", "get").Return(nil)

		gomega.Expect(worker.Evaluate(context.Background())).To(gomega.Equal(2))
	})

	ginkgo.It("should keep polling when one publish fails", func() {
		clock = newFakeClock(time.Date(2024, 3, 1, 20, 30, 0, 0, time.UTC))
		worker, err := usecases.NewTelemetryPollWorker(ticker, polls, publisher, clock.Now)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		publisher.EXPECT().Publish(gomock.Any(), "living_room/ceiling/temperature", "get").Return(errors.New("offline"))
		publisher.EXPECT().Publish(gomock.Any(), "kitchen/wall/light/level", "get").Return(nil)

		gomega.Expect(worker.Evaluate(context.Background())).To(gomega.Equal(1))
	})

	ginkgo.It("should stop when the context is cancelled", func() {
		worker, err := usecases.NewTelemetryPollWorker(ticker, nil, publisher, clock.Now)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go worker.Run(ctx, func() { close(done) })
		cancel()

		gomega.Eventually(done).Should(gomega.BeClosed())
	})
})

package workers_test

import (
	"context"
	"errors"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/data_plane/workers"
	"ecotronix-hub/internal/infra/async"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func linesStreamer(lines ...string) workers.LineStreamer {
	return func(_ context.Context, _ []string, onLine func([]byte)) error {
		for _, l := range lines {
			onLine([]byte(l))
		}
		return nil
	}
}

var _ = Describe("SensingWorker", func() {
	var (
		broker     *async.LocalBroker
		fatal      chan error
		phrases    async.Subscription
		identities async.Subscription
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		fatal = make(chan error, 2)
		var err error
		phrases, err = broker.Subscribe(domain.TopicPhraseEvents)
		Expect(err).NotTo(HaveOccurred())
		identities, err = broker.Subscribe(domain.TopicIdentityEvents)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		broker.Stop()
	})

	run := func(w *workers.SensingWorker, ctx context.Context) chan struct{} {
		done := make(chan struct{})
		go w.Run(ctx, func() { close(done) })
		return done
	}

	It("should publish phrase events and skip garbage", func() {
		worker := workers.NewSensingWorker(workers.SpeechSource, []string{"recognizer"}, broker, fatal).
			WithStreamer(linesStreamer(
				`garbage`,
				`{"phrase":"open the door","language":"en-us"}`,
				`{"phrase":"hi","language":"english"}`,
			))

		done := run(worker, context.Background())

		var msg async.BrokerMessage
		Eventually(phrases.Receiver).Should(Receive(&msg))
		Expect(msg.Value).To(HaveField("Phrase", "open the door"))
		Eventually(done).Should(BeClosed())
		Consistently(phrases.Receiver).ShouldNot(Receive())
	})

	It("should publish identity events", func() {
		worker := workers.NewSensingWorker(workers.IdentitySource, []string{"faces"}, broker, fatal).
			WithStreamer(linesStreamer(`{"user":"Alice"}`))

		run(worker, context.Background())

		Eventually(identities.Receiver).Should(Receive(HaveField("Value", HaveField("User", domain.UserName("Alice")))))
	})

	It("should report the end of the stream as fatal", func() {
		worker := workers.NewSensingWorker(workers.SpeechSource, []string{"recognizer"}, broker, fatal).
			WithStreamer(linesStreamer())

		run(worker, context.Background())

		Eventually(fatal).Should(Receive(MatchError(workers.ErrSensingStreamEnded)))
	})

	It("should report process failures as fatal", func() {
		exitErr := errors.New("exit status 1")
		worker := workers.NewSensingWorker(workers.IdentitySource, []string{"faces"}, broker, fatal).
			WithStreamer(func(context.Context, []string, func([]byte)) error { return exitErr })

		run(worker, context.Background())

		Eventually(fatal).Should(Receive(MatchError(exitErr)))
	})

	It("should stay quiet when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		worker := workers.NewSensingWorker(workers.SpeechSource, []string{"recognizer"}, broker, fatal).
			WithStreamer(func(ctx context.Context, _ []string, _ func([]byte)) error {
				<-ctx.Done()
				return ctx.Err()
			})

		done := run(worker, ctx)
		cancel()

		Eventually(done).Should(BeClosed())
		Expect(fatal).NotTo(Receive())
	})
})

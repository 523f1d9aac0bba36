package persistence_test

import (
	"context"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/persistence"
	"ecotronix-hub/internal/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("CachedTelemetryStore", func() {
	var (
		ctx   context.Context
		store *persistence.CachedTelemetryStore
		c     *cache.RistrettoCache
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		var err error
		c, err = cache.New(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		store = persistence.NewCachedTelemetryStore(c, time.Minute)
	})

	ginkgo.AfterEach(func() {
		c.Close()
	})

	ginkgo.It("should keep the last reading per topic", func() {
		first := domain.TelemetryReading{Topic: "kitchen/wall/temperature/get", Peripheral: "temperature", Value: "21.5"}
		second := first
		second.Value = "22.0"

		gomega.Expect(store.Save(ctx, first)).To(gomega.Succeed())
		gomega.Expect(store.Save(ctx, second)).To(gomega.Succeed())

		reading, ok := store.Get(ctx, "kitchen/wall/temperature/get")
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(reading.Value).To(gomega.Equal("22.0"))
	})

	ginkgo.It("should list every stored reading", func() {
		gomega.Expect(store.Save(ctx, domain.TelemetryReading{Topic: "kitchen/wall/temperature/get", Value: "21"})).To(gomega.Succeed())
		gomega.Expect(store.Save(ctx, domain.TelemetryReading{Topic: "hall/ceiling/led/integrated/get", Value: "on"})).To(gomega.Succeed())

		readings, err := store.All(ctx)

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(readings).To(gomega.HaveLen(2))
		gomega.Expect(readings[0].Topic).To(gomega.Equal("hall/ceiling/led/integrated/get"))
	})

	ginkgo.It("should miss unknown topics", func() {
		_, ok := store.Get(ctx, "garage/door/led/get")

		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should drop readings after the ttl", func() {
		short := persistence.NewCachedTelemetryStore(c, 50*time.Millisecond)
		gomega.Expect(short.Save(ctx, domain.TelemetryReading{Topic: "a/b/c/get", Value: "1"})).To(gomega.Succeed())

		gomega.Eventually(func() []domain.TelemetryReading {
			readings, _ := short.All(ctx)
			return readings
		}).WithTimeout(3 * time.Second).Should(gomega.BeEmpty())
	})

	ginkgo.It("should fail on a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		gomega.Expect(store.Save(cancelled, domain.TelemetryReading{Topic: "a/b/c/get"})).To(gomega.MatchError(context.Canceled))
	})
})

package usecases_test

import (
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func localCommand(invocation string, ageRestricted, privileged bool) domain.Command {
	cmd, err := domain.NewCommandBuilder().
		WithLocalTarget(invocation).
		WithAgeRestricted(ageRestricted).
		WithPrivileged(privileged).
		Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return cmd
}

var _ = ginkgo.Describe("PendingCommandQueue", func() {
	var (
		clock *fakeClock
		queue *usecases.PendingCommandQueue
	)

	ginkgo.BeforeEach(func() {
		clock = newFakeClock(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))
		queue = usecases.NewPendingCommandQueue(clock.Now)
	})

	ginkgo.It("should keep duplicates as independent entries", func() {
		cmd := localCommand("shutdown now", false, true)

		queue.Append(cmd, "en-us")
		queue.Append(cmd, "en-us")

		gomega.Expect(queue.Len()).To(gomega.Equal(2))
		snapshot := queue.Snapshot()
		gomega.Expect(snapshot[0].ID).NotTo(gomega.Equal(snapshot[1].ID))
	})

	ginkgo.It("should stamp entries with the clock", func() {
		queue.Append(localCommand("reboot", false, true), "es-es")

		gomega.Expect(queue.Snapshot()[0].EnqueuedAt).To(gomega.Equal(clock.Now()))
		gomega.Expect(queue.Snapshot()[0].Language).To(gomega.Equal(domain.Language("es-es")))
	})

	ginkgo.Context("SweepExpired", func() {
		ginkgo.It("should evict entries at exactly the timeout", func() {
			queue.Append(localCommand("reboot", false, true), "en-us")
			t0 := clock.Now()

			gomega.Expect(queue.SweepExpired(t0.Add(10*time.Second-time.Nanosecond), 10*time.Second)).To(gomega.BeEmpty())
			gomega.Expect(queue.Len()).To(gomega.Equal(1))

			evicted := queue.SweepExpired(t0.Add(10*time.Second), 10*time.Second)
			gomega.Expect(evicted).To(gomega.HaveLen(1))
			gomega.Expect(queue.Len()).To(gomega.BeZero())
		})

		ginkgo.It("should only evict the expired entries and keep order", func() {
			queue.Append(localCommand("first", false, true), "en-us")
			clock.Advance(6 * time.Second)
			queue.Append(localCommand("second", false, true), "en-us")
			queue.Append(localCommand("third", false, true), "en-us")

			queue.SweepExpired(clock.Now().Add(5*time.Second), 10*time.Second)

			keys := []string{}
			for _, entry := range queue.Snapshot() {
				keys = append(keys, entry.Command.Key())
			}
			gomega.Expect(keys).To(gomega.Equal([]string{"second", "third"}))
		})
	})

	ginkgo.Context("AuthorizeAndDrain", func() {
		ginkgo.It("should remove only the authorized subset", func() {
			queue.Append(localCommand("privileged", false, true), "en-us")
			queue.Append(localCommand("adult", true, false), "en-us")
			queue.Append(localCommand("privileged-too", false, true), "en-us")

			drained := queue.AuthorizeAndDrain(func(entry domain.PendingCommand) bool {
				return entry.Command.Privileged
			})

			gomega.Expect(drained).To(gomega.HaveLen(2))
			gomega.Expect(drained[0].Command.Key()).To(gomega.Equal("privileged"))
			gomega.Expect(drained[1].Command.Key()).To(gomega.Equal("privileged-too"))
			gomega.Expect(queue.Len()).To(gomega.Equal(1))
			gomega.Expect(queue.Snapshot()[0].Command.Key()).To(gomega.Equal("adult"))
		})

		ginkgo.It("should be a no-op on an empty queue", func() {
			gomega.Expect(queue.AuthorizeAndDrain(func(domain.PendingCommand) bool { return true })).To(gomega.BeEmpty())
		})

		ginkgo.It("should hand every entry out at most once under contention", func() {
			const entries = 200
			for range entries {
				queue.Append(localCommand("reboot", false, true), "en-us")
			}

			var (
				mu    sync.Mutex
				seen  = map[domain.ID]int{}
				wg    sync.WaitGroup
				start = make(chan struct{})
			)
			for range 8 {
				wg.Add(1)
				go func() {
					defer ginkgo.GinkgoRecover()
					defer wg.Done()
					<-start
					for range 10 {
						for _, entry := range queue.AuthorizeAndDrain(func(domain.PendingCommand) bool { return true }) {
							mu.Lock()
							seen[entry.ID]++
							mu.Unlock()
						}
						queue.Append(localCommand("late", false, true), "en-us")
					}
				}()
			}
			close(start)
			wg.Wait()

			total := len(queue.AuthorizeAndDrain(func(domain.PendingCommand) bool { return true }))
			for _, count := range seen {
				gomega.Expect(count).To(gomega.Equal(1))
			}
			gomega.Expect(len(seen) + total).To(gomega.Equal(entries + 80))
		})
	})

	ginkgo.It("should return snapshots detached from the live queue", func() {
		queue.Append(localCommand("reboot", false, true), "en-us")
		snapshot := queue.Snapshot()

		queue.AuthorizeAndDrain(func(domain.PendingCommand) bool { return true })

		gomega.Expect(snapshot).To(gomega.HaveLen(1))
		gomega.Expect(snapshot[0].Command.Key()).To(gomega.Equal("reboot"))
	})
})

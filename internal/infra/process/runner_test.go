package process_test

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"ecotronix-hub/internal/infra/process"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Runner", func() {
	ginkgo.Context("ScanLines", func() {
		ginkgo.It("should skip empty lines", func() {
			var lines []string
			err := process.ScanLines(strings.NewReader("{\"user\":\"alice\"}\n\n{\"user\":\"bob\"}\n"), func(line []byte) {
				lines = append(lines, string(line))
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(lines).To(gomega.Equal([]string{`{"user":"alice"}`, `{"user":"bob"}`}))
		})
	})

	ginkgo.Context("Spawn", func() {
		ginkgo.It("should reject an empty command", func() {
			err := process.NewExecRunner().Spawn(context.Background(), nil)

			gomega.Expect(err).To(gomega.MatchError(process.ErrEmptyCommand))
		})

		ginkgo.It("should report a missing binary", func() {
			err := process.NewExecRunner().Spawn(context.Background(), []string{"/nonexistent/ecotronix-binary"})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should start a detached process", func() {
			if _, err := exec.LookPath("true"); err != nil {
				ginkgo.Skip("true is not available")
			}
			runner := process.NewExecRunner()

			gomega.Expect(runner.Spawn(context.Background(), []string{"true"})).To(gomega.Succeed())
			gomega.Expect(runner.Wait(5 * time.Second)).To(gomega.BeTrue())
		})

		ginkgo.It("should give up waiting on children that outlive the timeout", func() {
			if _, err := exec.LookPath("sleep"); err != nil {
				ginkgo.Skip("sleep is not available")
			}
			runner := process.NewExecRunner()

			gomega.Expect(runner.Spawn(context.Background(), []string{"sleep", "1"})).To(gomega.Succeed())
			gomega.Expect(runner.Wait(10 * time.Millisecond)).To(gomega.BeFalse())
			gomega.Expect(runner.Wait(5 * time.Second)).To(gomega.BeTrue())
		})

		ginkgo.It("should return at once when nothing was spawned", func() {
			gomega.Expect(process.NewExecRunner().Wait(time.Millisecond)).To(gomega.BeTrue())
		})
	})

	ginkgo.Context("Stream", func() {
		ginkgo.It("should forward every stdout line", func() {
			if _, err := exec.LookPath("printf"); err != nil {
				ginkgo.Skip("printf is not available")
			}
			var lines []string
			err := process.Stream(context.Background(), []string{"printf", "a\\nb\\n"}, func(line []byte) {
				lines = append(lines, string(line))
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(lines).To(gomega.Equal([]string{"a", "b"}))
		})
	})
})

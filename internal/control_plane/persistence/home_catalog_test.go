package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/persistence"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

const homeFixture = `
general:
  legal_age: 18
languages:
  - language: en-us
    default: true
  - language: es-es
users:
  - name: Alice
    birth_date: "1985-06-01"
    language: en-us
  - name: Tim
    birth_date: "2012-09-30"
    language: en-us
  - name: Greg
    birth_date: "1990-01-01"
    language: es-es
roles:
  - role: Parents
    age_restriction: false
    privileged: true
    users: [Alice]
  - role: Kids
    age_restriction: true
    privileged: false
    users: [Tim, Greg]
rooms:
  - room: Entrance
    devices:
      - position: Front
        installed: true
        external_peripherals: [door lock]
      - position: Back
        installed: false
commands:
  local:
    - command: xdg-open https://www.youtube.com
      description: opens youtube
      phrases:
        - language: en-us
          phrases: [open youtube, youtube]
          response: opening youtube
        - language: es-es
          phrases: [abre youtube]
          response: abriendo youtube
  remote:
    - peripheral: Door Lock
      subtype: ""
      action: unlock
      room: Entrance
      position: Front
      privileged: true
      phrases:
        - language: en-us
          phrases: [open the door]
          response: door opened
`

func writeHomeFile(dir, content string) string {
	path := filepath.Join(dir, "home.yaml")
	gomega.Expect(os.WriteFile(path, []byte(content), 0o600)).To(gomega.Succeed())
	return path
}

var _ = ginkgo.Describe("HomeCatalog", func() {
	var (
		ctx     context.Context
		path    string
		catalog *persistence.HomeCatalog
		now     = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		path = writeHomeFile(ginkgo.GinkgoT().TempDir(), homeFixture)

		var err error
		catalog, err = persistence.NewHomeCatalogAt(path, now)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.Context("Resolve", func() {
		ginkgo.It("should resolve remote commands with the language response", func() {
			cmd, err := catalog.Resolve(ctx, "Open the door", "en-us")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(cmd.IsRemote()).To(gomega.BeTrue())
			gomega.Expect(cmd.Privileged).To(gomega.BeTrue())
			gomega.Expect(cmd.Response).To(gomega.Equal("door opened"))
			gomega.Expect(cmd.Target.(domain.RemoteTarget).Topic()).To(gomega.Equal("entrance/front/door_lock"))
		})

		ginkgo.It("should pick the response of the requested language", func() {
			cmd, err := catalog.Resolve(ctx, "abre youtube", "es-es")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(cmd.Key()).To(gomega.Equal("xdg-open https://www.youtube.com"))
			gomega.Expect(cmd.Response).To(gomega.Equal("abriendo youtube"))
			gomega.Expect(cmd.IsUnrestricted()).To(gomega.BeTrue())
		})

		ginkgo.It("should fall back to the default language", func() {
			cmd, err := catalog.Resolve(ctx, "youtube", "")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(cmd.Response).To(gomega.Equal("opening youtube"))
			gomega.Expect(catalog.DefaultLanguage()).To(gomega.Equal(domain.Language("en-us")))
		})

		ginkgo.It("should not match phrases from another language", func() {
			_, err := catalog.Resolve(ctx, "abre youtube", "en-us")

			gomega.Expect(err).To(gomega.MatchError(domain.ErrPhraseNotFound))
		})
	})

	ginkgo.Context("GetPermissions", func() {
		ginkgo.DescribeTable("should OR the flags of every role",
			func(user string, expected domain.PermissionSnapshot) {
				snapshot, err := catalog.GetPermissions(ctx, domain.UserName(user))

				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(snapshot).To(gomega.Equal(expected))
			},
			ginkgo.Entry("parent", "Alice", domain.PermissionSnapshot{Privileged: true}),
			ginkgo.Entry("case insensitive", "alice", domain.PermissionSnapshot{Privileged: true}),
			ginkgo.Entry("kid", "TIM", domain.PermissionSnapshot{AgeRestricted: true}),
		)

		ginkgo.It("should report unknown users", func() {
			_, err := catalog.GetPermissions(ctx, "mallory")

			gomega.Expect(err).To(gomega.MatchError(domain.ErrUserNotFound))
		})
	})

	ginkgo.It("should list every device", func() {
		devices, err := catalog.AllDevices(ctx)

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(devices).To(gomega.ConsistOf(
			domain.Device{Room: "Entrance", Position: "Front", Installed: true, ExternalPeripherals: []string{"door lock"}},
			domain.Device{Room: "Entrance", Position: "Back"},
		))
	})

	ginkgo.It("should warn about adults holding age restricted roles", func() {
		gomega.Expect(catalog.Warnings()).To(gomega.ContainElement(gomega.ContainSubstring("Greg is 34")))
		gomega.Expect(catalog.Warnings()).NotTo(gomega.ContainElement(gomega.ContainSubstring("Tim")))
	})

	ginkgo.Context("Reload", func() {
		ginkgo.It("should swap in the new file", func() {
			writeHomeFile(filepath.Dir(path), `
languages:
  - language: en-us
commands:
  local:
    - command: reboot
      privileged: true
      phrases:
        - language: en-us
          phrases: [restart]
`)
			gomega.Expect(catalog.Reload()).To(gomega.Succeed())

			_, err := catalog.Resolve(ctx, "open the door", "en-us")
			gomega.Expect(err).To(gomega.MatchError(domain.ErrPhraseNotFound))
			cmd, err := catalog.Resolve(ctx, "restart", "")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(cmd.Key()).To(gomega.Equal("reboot"))
		})

		ginkgo.It("should keep the previous snapshot when the file is broken", func() {
			writeHomeFile(filepath.Dir(path), "languages: [")

			gomega.Expect(catalog.Reload()).NotTo(gomega.Succeed())

			_, err := catalog.Resolve(ctx, "open the door", "en-us")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should reject phrases bound to two commands", func() {
			writeHomeFile(filepath.Dir(path), `
languages:
  - language: en-us
commands:
  local:
    - command: a
      phrases:
        - language: en-us
          phrases: [go]
    - command: b
      phrases:
        - language: en-us
          phrases: [Go]
`)
			gomega.Expect(catalog.Reload()).To(gomega.MatchError(persistence.ErrAmbiguousPhrase))
		})

		ginkgo.It("should reject malformed languages", func() {
			writeHomeFile(filepath.Dir(path), "languages:\n  - language: english\n")

			gomega.Expect(catalog.Reload()).To(gomega.MatchError(gomega.ContainSubstring("ll-ll")))
		})

		ginkgo.It("should reload when the watched file changes", func() {
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})
			go catalog.Run(runCtx, func() { close(done) })
			defer func() {
				cancel()
				gomega.Eventually(done).Should(gomega.BeClosed())
			}()

			gomega.Eventually(func() error {
				writeHomeFile(filepath.Dir(path), `
languages:
  - language: en-us
users:
  - name: Bob
    birth_date: "1970-01-01"
`)
				_, err := catalog.GetPermissions(ctx, "bob")
				return err
			}).Should(gomega.Succeed())
		})
	})
})

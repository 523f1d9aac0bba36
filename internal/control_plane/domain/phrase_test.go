package domain_test

import (
	"ecotronix-hub/internal/control_plane/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Phrase", func() {
	ginkgo.It("should normalize recognizer output", func() {
		gomega.Expect(domain.NormalizePhrase("  Turn ON,   the light! ")).To(gomega.Equal("turn on the light"))
	})

	ginkgo.DescribeTable("keyword spotting threshold",
		func(phrase string, expected int) {
			threshold, err := domain.PhraseThreshold(phrase)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(threshold).To(gomega.Equal(expected))
		},
		ginkgo.Entry("one syllable", "stop", 1),
		ginkgo.Entry("two syllables", "lights on", 10),
		ginkgo.Entry("vowel pairs count once", "open door", 15),
	)

	ginkgo.It("should reject phrases without syllables", func() {
		_, err := domain.PhraseThreshold("shh")
		gomega.Expect(err).To(gomega.MatchError(domain.ErrInvalidPhrase))
	})

	ginkgo.It("should reject phrases longer than ten syllables", func() {
		_, err := domain.PhraseThreshold("please open the garage door and turn on every light")
		gomega.Expect(err).To(gomega.MatchError(domain.ErrInvalidPhrase))
	})

	ginkgo.Context("events", func() {
		ginkgo.It("should validate phrase events", func() {
			gomega.Expect(domain.PhraseEvent{Phrase: "lights on", Language: "en-us"}.Validate()).To(gomega.Succeed())
			gomega.Expect(domain.PhraseEvent{Phrase: "  ", Language: "en-us"}.Validate()).To(gomega.MatchError(domain.ErrInvalidEvent))
			gomega.Expect(domain.PhraseEvent{Phrase: "lights on", Language: "english"}.Validate()).To(gomega.MatchError(domain.ErrInvalidEvent))
		})

		ginkgo.It("should validate identity events", func() {
			gomega.Expect(domain.IdentityEvent{User: "Alice"}.Validate()).To(gomega.Succeed())
			gomega.Expect(domain.IdentityEvent{User: " "}.Validate()).To(gomega.MatchError(domain.ErrInvalidEvent))
		})
	})
})

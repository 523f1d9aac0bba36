package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/httpapi"
	"ecotronix-hub/internal/infra/async"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IntakeController", func() {
	var (
		broker *async.LocalBroker
		router *http.ServeMux
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		router = http.NewServeMux()
		httpapi.NewIntakeController(broker).AddRoutes(router)
	})

	AfterEach(func() {
		broker.Stop()
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		router.ServeHTTP(recorder, request)
		return recorder
	}

	When("the dispatcher is listening", func() {
		var phrases, identities async.Subscription

		BeforeEach(func() {
			var err error
			phrases, err = broker.Subscribe(domain.TopicPhraseEvents)
			Expect(err).NotTo(HaveOccurred())
			identities, err = broker.Subscribe(domain.TopicIdentityEvents)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should publish phrase events", func() {
			recorder := post("/v1/phrases", `{"phrase":"open the door","language":"en-us"}`)

			Expect(recorder.Code).To(Equal(http.StatusAccepted))
			var msg async.BrokerMessage
			Eventually(phrases.Receiver).Should(Receive(&msg))
			Expect(msg.Event).To(Equal(domain.EventPhraseRecognized))
			event, ok := msg.Value.(domain.PhraseEvent)
			Expect(ok).To(BeTrue())
			Expect(event.Phrase).To(Equal("open the door"))
			Expect(event.Language).To(Equal(domain.Language("en-us")))
			Expect(event.ReceivedAt).NotTo(BeZero())
		})

		It("should publish identity events", func() {
			recorder := post("/v1/identities", `{"user":"Alice"}`)

			Expect(recorder.Code).To(Equal(http.StatusAccepted))
			Eventually(identities.Receiver).Should(Receive(HaveField("Value", HaveField("User", domain.UserName("Alice")))))
		})

		It("should reject malformed languages", func() {
			recorder := post("/v1/phrases", `{"phrase":"hi","language":"english"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(ContainSubstring("ll-ll"))
		})

		It("should reject empty users", func() {
			Expect(post("/v1/identities", `{"user":"  "}`).Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject invalid json", func() {
			Expect(post("/v1/phrases", `{"phrase":`).Code).To(Equal(http.StatusBadRequest))
		})
	})

	When("nobody consumes the events", func() {
		It("should answer service unavailable", func() {
			Expect(post("/v1/phrases", `{"phrase":"hi"}`).Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})

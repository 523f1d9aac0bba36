package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/httpapi"
	"ecotronix-hub/internal/infra/async"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DispatchEventsWebSocketController", func() {
	var (
		broker     *async.LocalBroker
		controller *httpapi.DispatchEventsWebSocketController
		server     *httptest.Server
		conn       *websocket.Conn
	)

	type frame struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		var err error
		controller, err = httpapi.NewDispatchEventsWebSocketController(broker)
		Expect(err).NotTo(HaveOccurred())

		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/dispatch-events"
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
		Eventually(controller.ClientCount).Should(Equal(1))
	})

	AfterEach(func() {
		conn.Close()
		controller.Shutdown()
		server.Close()
		broker.Stop()
	})

	read := func() frame {
		var f frame
		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		Expect(conn.ReadJSON(&f)).To(Succeed())
		return f
	}

	It("should stream dispatch outcomes", func() {
		Expect(broker.Publish(context.Background(), domain.TopicDispatchEvents, async.BrokerMessage{
			Event: string(domain.OutcomeExecuted),
			Value: domain.JournalEntry{
				ID:         "j1",
				Outcome:    domain.OutcomeExecuted,
				CommandKey: "entrance|front|door_lock|unlock",
				User:       "Alice",
				RecordedAt: time.Now(),
			},
		})).To(Succeed())

		f := read()
		Expect(f.Type).To(Equal("dispatch_outcome"))
		Expect(f.Data).To(HaveKeyWithValue("outcome", "executed"))
		Expect(f.Data).To(HaveKeyWithValue("user", "Alice"))
	})

	It("should stream telemetry readings", func() {
		Expect(broker.Publish(context.Background(), domain.TopicTelemetryEvents, async.BrokerMessage{
			Event: domain.EventTelemetryReceived,
			Value: domain.TelemetryReading{Topic: "hall/ceiling/led/integrated/get", Value: "on"},
		})).To(Succeed())

		f := read()
		Expect(f.Type).To(Equal("telemetry"))
		Expect(f.Data).To(HaveKeyWithValue("value", "on"))
	})

	It("should forget clients that disconnect", func() {
		Expect(conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))).To(Succeed())

		Eventually(controller.ClientCount).Should(BeZero())
	})
})

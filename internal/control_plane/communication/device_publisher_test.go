package communication_test

import (
	"context"
	"errors"

	"ecotronix-hub/internal/control_plane/communication"
	mockmqtt "ecotronix-hub/test/unit/doubles/infra/mqtt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("DevicePublisher", func() {
	var (
		ctrl   *gomock.Controller
		client *mockmqtt.MockClient
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		client = mockmqtt.NewMockClient(ctrl)
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.It("should publish the raw action with the configured qos", func() {
		publisher := communication.NewDevicePublisher(client, 2)
		client.EXPECT().Publish("entrance/front/door_lock", byte(2), "unlock").Return(nil)

		gomega.Expect(publisher.Publish(context.Background(), "entrance/front/door_lock", "unlock")).To(gomega.Succeed())
	})

	ginkgo.It("should fall back to qos 1 for invalid levels", func() {
		publisher := communication.NewDevicePublisher(client, 7)
		client.EXPECT().Publish(gomock.Any(), communication.DefaultQoS, gomock.Any()).Return(nil)

		gomega.Expect(publisher.Publish(context.Background(), "hall/ceiling/led/integrated", "on")).To(gomega.Succeed())
	})

	ginkgo.It("should wrap broker errors", func() {
		publisher := communication.NewDevicePublisher(client, 1)
		brokerErr := errors.New("not connected")
		client.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(brokerErr)

		err := publisher.Publish(context.Background(), "a/b/c", "off")

		gomega.Expect(err).To(gomega.MatchError(brokerErr))
	})

	ginkgo.It("should not publish on a cancelled context", func() {
		publisher := communication.NewDevicePublisher(client, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gomega.Expect(publisher.Publish(ctx, "a/b/c", "off")).To(gomega.MatchError(context.Canceled))
	})
})

package domain_test

import (
	"ecotronix-hub/internal/control_plane/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("BuildTopic", func() {
	ginkgo.DescribeTable("topic construction",
		func(room, position, peripheral, subtype, expected string) {
			gomega.Expect(domain.BuildTopic(room, position, peripheral, subtype)).To(gomega.Equal(expected))
		},
		ginkgo.Entry("living room light", "Living Room", "Entrance", "Light", "", "living_room/entrance/light"),
		ginkgo.Entry("front door lock", "Entrance", "Front", "Door Lock", "", "entrance/front/door_lock"),
		ginkgo.Entry("with subtype", "Kitchen", "Back", "BerryClip Led", "Red", "kitchen/back/berryclip_led/red"),
		ginkgo.Entry("subtype with spaces", "Kitchen", "Back", "BerryClip Led", "Dark Green", "kitchen/back/berryclip_led/dark_green"),
	)

	ginkgo.It("should expose telemetry filters for a device", func() {
		device := domain.Device{Room: "Living Room", Position: "Center"}

		gomega.Expect(device.TelemetryTopics()).To(gomega.ConsistOf(
			"living_room/center/+/get",
			"living_room/center/+/+/get",
		))
	})
})

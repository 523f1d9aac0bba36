package dto_test

import (
	"time"

	"ecotronix-hub/internal/data_plane/dto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseTelemetryTopic", func() {
	DescribeTable("valid reply topics",
		func(topic string, expected dto.TelemetryTopic) {
			parsed, ok := dto.ParseTelemetryTopic(topic)

			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(expected))
		},
		Entry("without subtype", "kitchen/wall/temperature/get",
			dto.TelemetryTopic{Room: "kitchen", Position: "wall", Peripheral: "temperature"}),
		Entry("with subtype", "living_room/ceiling/led/integrated/get",
			dto.TelemetryTopic{Room: "living_room", Position: "ceiling", Peripheral: "led", Subtype: "integrated"}),
	)

	DescribeTable("other topics",
		func(topic string) {
			_, ok := dto.ParseTelemetryTopic(topic)

			Expect(ok).To(BeFalse())
		},
		Entry("action topic", "entrance/front/door_lock"),
		Entry("too short", "kitchen/get"),
		Entry("too deep", "a/b/c/d/e/get"),
	)

	It("should build trimmed readings", func() {
		parsed, ok := dto.ParseTelemetryTopic("kitchen/wall/temperature/get")
		Expect(ok).To(BeTrue())
		now := time.Now()

		reading := parsed.Reading("kitchen/wall/temperature/get", []byte("21.5\n"), now)

		Expect(reading.Value).To(Equal("21.5"))
		Expect(reading.Peripheral).To(Equal("temperature"))
		Expect(reading.ReceivedAt).To(Equal(now))
	})
})

package sql_test

import (
	"context"
	"time"

	"ecotronix-hub/internal/infra/sql"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type outcomeRow struct {
	ID         string `gorm:"primaryKey"`
	Outcome    string
	RecordedAt time.Time
}

var _ = ginkgo.Describe("ORM", func() {
	var (
		orm sql.ORM
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		db, err := sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		orm = db
		ctx = context.Background()
		gomega.Expect(orm.AutoMigrate(&outcomeRow{})).To(gomega.Succeed())
	})

	ginkgo.It("should create and query rows", func() {
		now := time.Now()
		gomega.Expect(orm.WithContext(ctx).Create(&outcomeRow{ID: "1", Outcome: "queued", RecordedAt: now}).Error()).To(gomega.Succeed())
		gomega.Expect(orm.WithContext(ctx).Create(&outcomeRow{ID: "2", Outcome: "executed", RecordedAt: now.Add(time.Second)}).Error()).To(gomega.Succeed())

		var rows []outcomeRow
		err := orm.WithContext(ctx).Order("recorded_at desc").Limit(1).Find(&rows).Error()

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(rows).To(gomega.HaveLen(1))
		gomega.Expect(rows[0].Outcome).To(gomega.Equal("executed"))
	})

	ginkgo.It("should map missing records to ErrRecordNotFound", func() {
		var row outcomeRow
		err := orm.WithContext(ctx).Where("id = ?", "missing").First(&row).Error()

		gomega.Expect(err).To(gomega.MatchError(sql.ErrRecordNotFound))
	})

	ginkgo.It("should keep memory databases isolated", func() {
		gomega.Expect(orm.WithContext(ctx).Create(&outcomeRow{ID: "1", Outcome: "queued"}).Error()).To(gomega.Succeed())

		other, err := sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(other.AutoMigrate(&outcomeRow{})).To(gomega.Succeed())

		var count int64
		gomega.Expect(other.WithContext(ctx).Model(&outcomeRow{}).Count(&count).Error()).To(gomega.Succeed())
		gomega.Expect(count).To(gomega.BeZero())
	})

	ginkgo.It("should reject unknown drivers", func() {
		_, err := sql.Open("oracle", "dsn")

		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("unsupported")))
	})
})

package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestInternal(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Internal Suite")
}

var _ = ginkgo.Describe("Date", func() {
	ginkgo.It("should marshal as YYYY-MM-DD", func() {
		d := NewDate(2026, time.March, 5)
		out, err := json.Marshal(d)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(string(out)).To(gomega.Equal(`"2026-03-05"`))
	})

	ginkgo.It("should marshal the zero value as null", func() {
		var d Date
		out, err := json.Marshal(d)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(string(out)).To(gomega.Equal("null"))
	})

	ginkgo.It("should unmarshal empty strings and null to the zero value", func() {
		var d Date
		gomega.Expect(json.Unmarshal([]byte(`""`), &d)).To(gomega.Succeed())
		gomega.Expect(d.IsZero()).To(gomega.BeTrue())

		gomega.Expect(json.Unmarshal([]byte(`null`), &d)).To(gomega.Succeed())
		gomega.Expect(d.IsZero()).To(gomega.BeTrue())
	})

	ginkgo.It("should reject malformed dates", func() {
		var d Date
		gomega.Expect(json.Unmarshal([]byte(`"05/03/2026"`), &d)).ToNot(gomega.Succeed())
	})

	ginkgo.It("should store the zero value as SQL NULL", func() {
		var d Date
		v, err := d.Value()
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(v).To(gomega.BeNil())
	})

	ginkgo.It("should scan database strings, bytes and times", func() {
		var d Date
		gomega.Expect(d.Scan("2026-03-05")).To(gomega.Succeed())
		gomega.Expect(d.Format("2006-01-02")).To(gomega.Equal("2026-03-05"))

		gomega.Expect(d.Scan([]byte("2026-12-31"))).To(gomega.Succeed())
		gomega.Expect(d.Format("2006-01-02")).To(gomega.Equal("2026-12-31"))

		gomega.Expect(d.Scan(time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC))).To(gomega.Succeed())
		gomega.Expect(d.Year()).To(gomega.Equal(2025))

		gomega.Expect(d.Scan(nil)).To(gomega.Succeed())
		gomega.Expect(d.IsZero()).To(gomega.BeTrue())
	})
})

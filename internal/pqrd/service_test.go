package pqrd

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

func TestPqrd(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "PQRD Module Suite")
}

// in-memory Repository
type mockPqrdRepo struct {
	rows []*PQRD
}

func (m *mockPqrdRepo) List() ([]*PQRD, error) {
	return m.rows, nil
}

func (m *mockPqrdRepo) Count() (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *mockPqrdRepo) GetByLabel(label string) (*PQRD, error) {
	for _, r := range m.rows {
		if r.Label == label {
			return r, nil
		}
	}
	return nil, internal.ErrPqrdNotFound
}

func (m *mockPqrdRepo) BulkInsert(rows []*PQRD) error {
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *mockPqrdRepo) DeleteAll() (int64, error) {
	n := int64(len(m.rows))
	m.rows = nil
	return n, nil
}

var _ = ginkgo.Describe("PqrdService", func() {
	var (
		service *Service
		repo    *mockPqrdRepo
	)

	ginkgo.BeforeEach(func() {
		repo = &mockPqrdRepo{}
		service = NewService(repo, slog.Default())
	})

	ginkgo.Describe("BulkLoad", func() {
		ginkgo.It("should collapse blank strings and zero dates to NULL", func() {
			var zero internal.Date
			fecha := internal.NewDate(2026, 1, 20)

			result, err := service.BulkLoad(BulkLoadDTO{Pqrds: []entry{
				{Label: "PQRD-001", TipoGestion: "", Dependencia: "Atención", FechaIngreso: &zero},
				{Label: "PQRD-002", Entidad: "Salud", FechaIngreso: &fecha, Periodo: "2026-T1"},
			}})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.Insertados).To(gomega.Equal(2))

			first := repo.rows[0]
			gomega.Expect(first.TipoGestion).To(gomega.BeNil())
			gomega.Expect(*first.Dependencia).To(gomega.Equal("Atención"))
			gomega.Expect(first.FechaIngreso).To(gomega.BeNil())

			second := repo.rows[1]
			gomega.Expect(second.FechaIngreso).ToNot(gomega.BeNil())
			gomega.Expect(*second.Periodo).To(gomega.Equal("2026-T1"))
		})
	})

	ginkgo.Describe("GetByLabel", func() {
		ginkgo.It("should return not found for an unknown label", func() {
			_, err := service.GetByLabel("PQRD-999")
			gomega.Expect(err).To(gomega.Equal(internal.ErrPqrdNotFound))
		})
	})

	ginkgo.Describe("DeleteAll", func() {
		ginkgo.BeforeEach(func() {
			repo.rows = []*PQRD{{Label: "PQRD-001"}, {Label: "PQRD-002"}}
		})

		ginkgo.It("should refuse non-admin callers", func() {
			_, err := service.DeleteAll(&auth.User{ID: 2, Role: auth.RoleEntidad})

			gomega.Expect(err).To(gomega.Equal(internal.ErrAdminOnly))
			gomega.Expect(repo.rows).To(gomega.HaveLen(2))
		})

		ginkgo.It("should refuse flagged entidad users too", func() {
			flagged := &auth.User{ID: 5, Role: auth.RoleEntidad, EntidadAuditor: true}
			_, err := service.DeleteAll(flagged)
			gomega.Expect(err).To(gomega.Equal(internal.ErrAdminOnly))
		})

		ginkgo.It("should report the deleted count for admins", func() {
			result, err := service.DeleteAll(&auth.User{ID: 1, Role: auth.RoleAdmin})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.Eliminados).To(gomega.Equal(int64(2)))
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})
	})
})

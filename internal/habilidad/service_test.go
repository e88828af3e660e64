package habilidad

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/dfquintero/plan-seguimiento/internal"
)

func TestHabilidad(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Habilidad Module Suite")
}

// in-memory Repository
type mockHabilidadRepo struct {
	rows   map[int64]*Habilidad
	nextID int64
}

func newMockHabilidadRepo() *mockHabilidadRepo {
	return &mockHabilidadRepo{rows: make(map[int64]*Habilidad), nextID: 1}
}

func (m *mockHabilidadRepo) List() ([]*Habilidad, error) {
	out := make([]*Habilidad, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockHabilidadRepo) GetByID(id int64) (*Habilidad, error) {
	if r, ok := m.rows[id]; ok {
		return r, nil
	}
	return nil, internal.ErrHabilidadNotFound
}

func (m *mockHabilidadRepo) BulkInsert(rows []Habilidad) error {
	for i := range rows {
		copied := rows[i]
		copied.ID = m.nextID
		m.rows[m.nextID] = &copied
		m.nextID++
	}
	return nil
}

func (m *mockHabilidadRepo) Delete(id int64) error {
	if _, ok := m.rows[id]; !ok {
		return internal.ErrHabilidadNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *mockHabilidadRepo) DeleteAll() error {
	m.rows = make(map[int64]*Habilidad)
	return nil
}

var _ = ginkgo.Describe("HabilidadService", func() {
	var (
		service *Service
		repo    *mockHabilidadRepo
	)

	ginkgo.BeforeEach(func() {
		repo = newMockHabilidadRepo()
		service = NewService(repo, slog.Default())
	})

	ginkgo.Describe("BulkLoad", func() {
		ginkgo.It("should insert the measurements and report the count", func() {
			result, err := service.BulkLoad(BulkLoadDTO{Habilidades: []Habilidad{
				{Anio: 2026, Mes: 1, IDEntidad: 10},
				{Anio: 2026, Mes: 2, IDEntidad: 10},
			}})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.Insertados).To(gomega.Equal(2))
			gomega.Expect(repo.rows).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should confirm the deletion", func() {
			gomega.Expect(repo.BulkInsert([]Habilidad{{Anio: 2026, Mes: 1, IDEntidad: 10}})).To(gomega.Succeed())

			result, err := service.Delete(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.Message).To(gomega.Equal("Habilidad eliminada exitosamente"))
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})

		ginkgo.It("should return not found for an unknown id", func() {
			_, err := service.Delete(404)
			gomega.Expect(err).To(gomega.Equal(internal.ErrHabilidadNotFound))
		})
	})

	ginkgo.Describe("DeleteAll", func() {
		ginkgo.It("should wipe the collection and confirm", func() {
			gomega.Expect(repo.BulkInsert([]Habilidad{{Anio: 2026, Mes: 1, IDEntidad: 10}})).To(gomega.Succeed())

			result, err := service.DeleteAll()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.Message).To(gomega.Equal("Todas las habilidades han sido eliminadas exitosamente"))
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})
	})
})

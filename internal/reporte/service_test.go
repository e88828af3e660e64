package reporte

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/dfquintero/plan-seguimiento/internal"
)

func TestReporte(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Reporte Module Suite")
}

// in-memory Repository
type mockReporteRepo struct {
	rows []*Reporte
}

func (m *mockReporteRepo) List() ([]*Reporte, error) {
	return m.rows, nil
}

func (m *mockReporteRepo) ListByEntidad(entidad string) ([]*Reporte, error) {
	out := make([]*Reporte, 0)
	for _, r := range m.rows {
		if r.Entidad == entidad {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReporteRepo) BulkInsert(rows []Reporte) error {
	for i := range rows {
		copied := rows[i]
		m.rows = append(m.rows, &copied)
	}
	return nil
}

func (m *mockReporteRepo) DeleteAll() (int64, error) {
	n := int64(len(m.rows))
	m.rows = nil
	return n, nil
}

var _ = ginkgo.Describe("ReporteService", func() {
	var (
		service *Service
		repo    *mockReporteRepo
	)

	insumo := "Informe trimestral"

	ginkgo.BeforeEach(func() {
		repo = &mockReporteRepo{}
		service = NewService(repo, slog.Default())
	})

	ginkgo.Describe("GetByEntidad", func() {
		ginkgo.BeforeEach(func() {
			repo.rows = []*Reporte{
				{Entidad: "Salud", Indicador: "Oportunidad", Criterio: "Eficacia", Accion: "Capacitar", Insumo: &insumo},
				{Entidad: "Salud", Indicador: "", Criterio: "Eficacia", Accion: "Ignorada"},
				{Entidad: "Salud", Indicador: "Cobertura", Criterio: "", Accion: "Ignorada"},
				{Entidad: "Hacienda", Indicador: "Recaudo", Criterio: "Eficiencia", Accion: "Otro"},
			}
		})

		ginkgo.It("should group rows under the entity", func() {
			got, err := service.GetByEntidad("Salud")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(got.Entidad).To(gomega.Equal("Salud"))
			gomega.Expect(got.Indicadores).To(gomega.HaveLen(1))
			gomega.Expect(got.Indicadores[0].Indicador).To(gomega.Equal("Oportunidad"))
			gomega.Expect(*got.Indicadores[0].Insumo).To(gomega.Equal(insumo))
		})

		ginkgo.It("should return not found when the entity has no rows", func() {
			_, err := service.GetByEntidad("Educación")
			gomega.Expect(err).To(gomega.Equal(internal.ErrReporteNotFound))
		})
	})

	ginkgo.Describe("BulkLoad", func() {
		ginkgo.It("should report how many rows were inserted", func() {
			result, err := service.BulkLoad(BulkLoadDTO{Reportes: []Reporte{
				{Entidad: "Salud", Indicador: "A", Criterio: "B", Accion: "C"},
				{Entidad: "Salud", Indicador: "D", Criterio: "E", Accion: "F"},
			}})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.Insertados).To(gomega.Equal(2))
			gomega.Expect(repo.rows).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("DeleteAll", func() {
		ginkgo.It("should phrase the count in the detail message", func() {
			repo.rows = []*Reporte{{Entidad: "Salud"}, {Entidad: "Hacienda"}, {Entidad: "Salud"}}

			result, err := service.DeleteAll()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.Detail).To(gomega.Equal("3 registros eliminados"))
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})
	})
})

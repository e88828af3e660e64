package user

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

// in-memory Repository
type mockUserRepo struct {
	users   map[int64]*User
	nextID  int64
	relinks []int64
}

func newMockUserRepo(seed ...*User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[int64]*User), nextID: 1}
	for _, u := range seed {
		copied := *u
		copied.ID = m.nextID
		m.users[m.nextID] = &copied
		m.nextID++
	}
	return m
}

func (m *mockUserRepo) GetByID(id int64) (*User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepo) List() ([]*User, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Create(u *User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return internal.ErrEmailExists
		}
	}
	u.ID = m.nextID
	copied := *u
	m.users[m.nextID] = &copied
	m.nextID++
	return nil
}

func (m *mockUserRepo) Update(u *User) error {
	stored, ok := m.users[u.ID]
	if !ok {
		return internal.ErrUserNotFound
	}
	stored.Role = u.Role
	stored.Entidad = u.Entidad
	stored.EntidadPerm = u.EntidadPerm
	stored.EntidadAuditor = u.EntidadAuditor
	return nil
}

func (m *mockUserRepo) UpdatePassword(id int64, digest string) error {
	stored, ok := m.users[id]
	if !ok {
		return internal.ErrUserNotFound
	}
	stored.HashedPassword = digest
	return nil
}

func (m *mockUserRepo) CountAdmins() (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == auth.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepo) DeleteWithRelink(id int64) error {
	if _, ok := m.users[id]; !ok {
		return internal.ErrUserNotFound
	}
	m.relinks = append(m.relinks, id)
	delete(m.users, id)
	return nil
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service *Service
		repo    *mockUserRepo
		admin   *auth.User
	)

	perm := auth.PermReportesSeguimiento

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepo(
			&User{Email: "admin@demo.com", Role: auth.RoleAdmin, Entidad: "Central"},
			&User{Email: "salud@demo.com", Role: auth.RoleEntidad, Entidad: "Salud", EntidadPerm: &perm},
			&User{Email: "auditor@demo.com", Role: auth.RoleAuditor, Entidad: "Control"},
		)
		service = NewService(repo, fakeHasher{}, slog.Default())
		admin = &auth.User{ID: 1, Email: "admin@demo.com", Role: auth.RoleAdmin}
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should lowercase and trim the email", func() {
			u, err := service.Create(CreateUserDTO{
				Email:    "  Nueva@Demo.COM ",
				Password: "password123",
				Role:     auth.RoleEntidad,
				Entidad:  "Educación",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Email).To(gomega.Equal("nueva@demo.com"))
		})

		ginkgo.It("should reject short passwords with a validation error", func() {
			_, err := service.Create(CreateUserDTO{
				Email:    "x@demo.com",
				Password: "short",
				Role:     auth.RoleEntidad,
				Entidad:  "Salud",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(422))
		})

		ginkgo.It("should reject a blank entidad", func() {
			_, err := service.Create(CreateUserDTO{
				Email:    "x@demo.com",
				Password: "password123",
				Role:     auth.RoleAuditor,
				Entidad:  "  ",
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should surface duplicate emails as a conflict", func() {
			_, err := service.Create(CreateUserDTO{
				Email:    "salud@demo.com",
				Password: "password123",
				Role:     auth.RoleEntidad,
				Entidad:  "Salud",
			})
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmailExists))
		})

		ginkgo.It("should force entity-scoped fields off for non-entidad roles", func() {
			auditorFlag := true
			p := auth.PermCapturaReportes
			u, err := service.Create(CreateUserDTO{
				Email:          "aud2@demo.com",
				Password:       "password123",
				Role:           auth.RoleAuditor,
				Entidad:        "Control",
				EntidadPerm:    &p,
				EntidadAuditor: &auditorFlag,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.EntidadPerm).To(gomega.BeNil())
			gomega.Expect(u.EntidadAuditor).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("UpdateRole", func() {
		ginkgo.It("should clear perm and auditor flag when leaving entidad", func() {
			target, _ := repo.GetByID(2)
			target.EntidadAuditor = true
			gomega.Expect(repo.Update(target)).To(gomega.Succeed())

			updated, err := service.UpdateRole(admin, 2, RoleUpdateDTO{Role: auth.RoleAuditor})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Role).To(gomega.Equal(auth.RoleAuditor))
			gomega.Expect(updated.EntidadPerm).To(gomega.BeNil())
			gomega.Expect(updated.EntidadAuditor).To(gomega.BeFalse())
			gomega.Expect(updated.Entidad).To(gomega.Equal("Salud"))
		})

		ginkgo.It("should default the perm when entering entidad", func() {
			updated, err := service.UpdateRole(admin, 3, RoleUpdateDTO{Role: auth.RoleEntidad})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.EntidadPerm).ToNot(gomega.BeNil())
			gomega.Expect(*updated.EntidadPerm).To(gomega.Equal(auth.PermCapturaReportes))
		})

		ginkgo.It("should refuse to demote the caller", func() {
			_, err := service.UpdateRole(admin, 1, RoleUpdateDTO{Role: auth.RoleEntidad})
			gomega.Expect(err).To(gomega.Equal(internal.ErrSelfDemote))
		})

		ginkgo.It("should refuse to demote the last admin", func() {
			other := &auth.User{ID: 3, Role: auth.RoleAdmin}
			_, err := service.UpdateRole(other, 1, RoleUpdateDTO{Role: auth.RoleAuditor})
			gomega.Expect(err).To(gomega.Equal(internal.ErrLastAdmin))
		})
	})

	ginkgo.Describe("UpdatePerm", func() {
		ginkgo.It("should update the perm of an entidad user", func() {
			updated, err := service.UpdatePerm(2, PermUpdateDTO{EntidadPerm: auth.PermCapturaReportes})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*updated.EntidadPerm).To(gomega.Equal(auth.PermCapturaReportes))
		})

		ginkgo.It("should refuse for non-entidad targets", func() {
			_, err := service.UpdatePerm(3, PermUpdateDTO{EntidadPerm: auth.PermCapturaReportes})
			gomega.Expect(err).To(gomega.Equal(internal.ErrPermForEntidadOnly))
		})
	})

	ginkgo.Describe("UpdateAuditorFlag", func() {
		ginkgo.It("should toggle the flag on entidad users only", func() {
			updated, err := service.UpdateAuditorFlag(2, AuditorUpdateDTO{EntidadAuditor: true})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.EntidadAuditor).To(gomega.BeTrue())

			_, err = service.UpdateAuditorFlag(1, AuditorUpdateDTO{EntidadAuditor: true})
			gomega.Expect(err).To(gomega.Equal(internal.ErrPermForEntidadOnly))
		})
	})

	ginkgo.Describe("ResetPassword", func() {
		ginkgo.It("should store a new digest", func() {
			gomega.Expect(service.ResetPassword(2, PasswordResetDTO{NewPassword: "fresh-password"})).To(gomega.Succeed())
			stored, _ := repo.GetByID(2)
			gomega.Expect(stored.HashedPassword).To(gomega.Equal("hashed:fresh-password"))
		})

		ginkgo.It("should reject short passwords", func() {
			err := service.ResetPassword(2, PasswordResetDTO{NewPassword: "tiny"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should report unknown users", func() {
			err := service.ResetPassword(99, PasswordResetDTO{NewPassword: "fresh-password"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should refuse self-deletion", func() {
			err := service.Delete(admin, 1)
			gomega.Expect(err).To(gomega.Equal(internal.ErrSelfDelete))
		})

		ginkgo.It("should refuse deleting the last admin", func() {
			other := &auth.User{ID: 3, Role: auth.RoleAdmin}
			err := service.Delete(other, 1)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeLastAdmin))
		})

		ginkgo.It("should relink references and delete in one step", func() {
			err := service.Delete(admin, 2)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.relinks).To(gomega.ConsistOf(int64(2)))
			_, err = repo.GetByID(2)
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})
})

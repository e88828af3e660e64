package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("HasAnyRole", func() {
	ginkgo.It("matches the user's own role", func() {
		u := &User{Role: RoleAuditor}
		gomega.Expect(u.HasAnyRole(RoleAuditor, RoleAdmin)).To(gomega.BeTrue())
		gomega.Expect(u.HasAnyRole(RoleEntidad)).To(gomega.BeFalse())
	})

	ginkgo.It("lets a flagged entidad user pass auditor checks", func() {
		u := &User{Role: RoleEntidad, EntidadAuditor: true}
		gomega.Expect(u.HasAnyRole(RoleAuditor, RoleAdmin)).To(gomega.BeTrue())
	})

	ginkgo.It("does not extend the auditor flag to other role checks", func() {
		u := &User{Role: RoleEntidad, EntidadAuditor: true}
		gomega.Expect(u.HasAnyRole(RoleAdmin)).To(gomega.BeFalse())
	})

	ginkgo.It("ignores the flag on non-entidad users", func() {
		u := &User{Role: RoleCiudadano, EntidadAuditor: true}
		gomega.Expect(u.HasAnyRole(RoleAuditor)).To(gomega.BeFalse())
	})
})

var _ = ginkgo.Describe("ScopeForUser", func() {
	ginkgo.It("leaves admins unfiltered", func() {
		scope := ScopeForUser(&User{Role: RoleAdmin, Entidad: "Central"})
		gomega.Expect(scope.All).To(gomega.BeTrue())
	})

	ginkgo.It("leaves auditors unfiltered", func() {
		scope := ScopeForUser(&User{Role: RoleAuditor, Entidad: "Control Interno"})
		gomega.Expect(scope.All).To(gomega.BeTrue())
	})

	ginkgo.It("pins a plain entidad user to their own entity", func() {
		scope := ScopeForUser(&User{Role: RoleEntidad, Entidad: "  Secretaría de Salud  "})
		gomega.Expect(scope.All).To(gomega.BeFalse())
		gomega.Expect(scope.Entidad).To(gomega.Equal("Secretaría de Salud"))
	})

	ginkgo.It("unfilters an entidad user carrying the auditor flag", func() {
		scope := ScopeForUser(&User{Role: RoleEntidad, Entidad: "Salud", EntidadAuditor: true})
		gomega.Expect(scope.All).To(gomega.BeTrue())
	})

	ginkgo.It("falls back to unfiltered when the entidad field is blank", func() {
		scope := ScopeForUser(&User{Role: RoleEntidad, Entidad: "   "})
		gomega.Expect(scope.All).To(gomega.BeTrue())
	})
})

var _ = ginkgo.Describe("CanWriteObservacion", func() {
	ginkgo.It("allows auditors and admins", func() {
		gomega.Expect(CanWriteObservacion(&User{Role: RoleAuditor})).To(gomega.BeTrue())
		gomega.Expect(CanWriteObservacion(&User{Role: RoleAdmin})).To(gomega.BeTrue())
	})

	ginkgo.It("allows entidad users only with the auditor flag", func() {
		gomega.Expect(CanWriteObservacion(&User{Role: RoleEntidad})).To(gomega.BeFalse())
		gomega.Expect(CanWriteObservacion(&User{Role: RoleEntidad, EntidadAuditor: true})).To(gomega.BeTrue())
	})
})

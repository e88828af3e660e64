package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfquintero/plan-seguimiento/internal/auth"
	"github.com/dfquintero/plan-seguimiento/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo users",
	Long:  `Seed the database with demo users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, gormDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			if err := gormDB.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing users")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		perm := auth.PermReportesSeguimiento
		seeds := []user.User{
			{
				Email:          "admin@demo.com",
				HashedPassword: string(hash),
				Role:           auth.RoleAdmin,
				Entidad:        "Secretaría de Evaluación",
			},
			{
				Email:          "entidad@demo.com",
				HashedPassword: string(hash),
				Role:           auth.RoleEntidad,
				Entidad:        "Secretaría de Salud",
				EntidadPerm:    &perm,
			},
			{
				Email:          "auditor@demo.com",
				HashedPassword: string(hash),
				Role:           auth.RoleAuditor,
				Entidad:        "Oficina de Control Interno",
			},
		}

		for _, seed := range seeds {
			var count int64
			if err := gormDB.Model(&user.User{}).Where("email = ?", seed.Email).Count(&count).Error; err != nil {
				log.Fatalf("failed to check user %s: %v", seed.Email, err)
			}
			if count > 0 {
				fmt.Printf("user %s already exists, skipping\n", seed.Email)
				continue
			}
			if err := gormDB.Create(&seed).Error; err != nil {
				log.Fatalf("failed to seed user %s: %v", seed.Email, err)
			}
			fmt.Printf("seeded %s (%s)\n", seed.Email, seed.Role)
		}
	},
}

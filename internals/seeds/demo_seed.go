package seeds

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	centerModel "nestflow_backend/internals/features/centers/model"
	classroomModel "nestflow_backend/internals/features/classrooms/model"
	userModel "nestflow_backend/internals/features/users/user/model"
)

// SeedDemoData provisions the demo center with three login accounts and
// two classrooms. Safe to run repeatedly: an existing center short
// circuits the whole seed.
func SeedDemoData(db *gorm.DB) {
	var count int64
	if err := db.Model(&centerModel.CenterModel{}).Count(&count).Error; err != nil {
		log.Printf("[SEED] center lookup failed: %v", err)
		return
	}
	if count > 0 {
		log.Println("[SEED] data already present, skipping")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		address := "123 Main St, Anytown, USA"
		phone := "555-0100"
		email := "info@democenter.com"
		center := centerModel.CenterModel{
			ID:      uuid.New(),
			Name:    "Demo Childcare Center",
			Address: &address,
			Phone:   &phone,
			Email:   &email,
		}
		if err := tx.Create(&center).Error; err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		users := []struct {
			email, role, first, last string
		}{
			{"admin@demo.com", "ADMIN", "Admin", "User"},
			{"teacher@demo.com", "TEACHER", "Sarah", "Teacher"},
			{"parent@demo.com", "PARENT", "Parent", "User"},
		}
		for _, u := range users {
			first, last := u.first, u.last
			m := userModel.UserModel{
				ID:           uuid.New(),
				CenterID:     &center.ID,
				Email:        u.email,
				PasswordHash: string(hash),
				Role:         u.role,
				FirstName:    &first,
				LastName:     &last,
				IsActive:     true,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}

		classrooms := []struct {
			name     string
			capacity int
			ageGroup string
		}{
			{"Toddlers 1A", 12, "1-2 years"},
			{"Infants", 8, "0-1 years"},
		}
		for _, cr := range classrooms {
			ageGroup := cr.ageGroup
			m := classroomModel.ClassroomModel{
				ID:       uuid.New(),
				CenterID: center.ID,
				Name:     cr.name,
				Capacity: cr.capacity,
				AgeGroup: &ageGroup,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[SEED] demo seed failed: %v", err)
		return
	}

	log.Println("[SEED] demo data ready (admin@demo.com / demo123)")
}

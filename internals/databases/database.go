package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	activityModel "nestflow_backend/internals/features/activities/model"
	attendanceModel "nestflow_backend/internals/features/attendance/model"
	billingModel "nestflow_backend/internals/features/billing/model"
	centerModel "nestflow_backend/internals/features/centers/model"
	childModel "nestflow_backend/internals/features/children/model"
	classroomModel "nestflow_backend/internals/features/classrooms/model"
	consentModel "nestflow_backend/internals/features/consents/model"
	healthModel "nestflow_backend/internals/features/health/model"
	leadModel "nestflow_backend/internals/features/leads/model"
	messageModel "nestflow_backend/internals/features/messages/model"
	staffModel "nestflow_backend/internals/features/staff/model"
	authModel "nestflow_backend/internals/features/users/auth/model"
	userModel "nestflow_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[DB] connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=nestflow&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // plays well with PgBouncer transaction pooling
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}
	log.Println("[DB] connected.")
}

// Migrate keeps the schema in sync and enforces the one-open-attendance
// invariant with a partial unique index (Postgres only; SQLite test DBs
// rely on the transactional check in the controller).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&centerModel.CenterModel{},
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&classroomModel.ClassroomModel{},
		&staffModel.StaffMemberModel{},
		&childModel.ChildModel{},
		&childModel.GuardianModel{},
		&activityModel.ActivityModel{},
		&attendanceModel.AttendanceModel{},
		&messageModel.MessageModel{},
		&billingModel.InvoiceModel{},
		&consentModel.ConsentTemplateModel{},
		&consentModel.SignedConsentFormModel{},
		&healthModel.HealthProfileModel{},
		&healthModel.ImmunizationModel{},
		&healthModel.MedicationModel{},
		&leadModel.LeadModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_open_per_day
			 ON attendance (child_id, date) WHERE check_out_time IS NULL`,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package service

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

// newTestDB opens an in-memory sqlite database with a hand-written schema.
// The model defaults (gen_random_uuid, now()) are postgres-only, so the
// tables are created explicitly in a sqlite-friendly form.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			full_name TEXT,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			password TEXT,
			role TEXT NOT NULL DEFAULT 'LEARNER',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE schools (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			city TEXT,
			address TEXT,
			contact_phone TEXT,
			rating REAL,
			price_per_lesson REAL,
			default_lesson_minutes INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE instructors (
			id TEXT PRIMARY KEY,
			school_id TEXT NOT NULL,
			name TEXT NOT NULL,
			bio TEXT,
			rating REAL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE lesson_slots (
			id TEXT PRIMARY KEY,
			instructor_id TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			duration_minutes INTEGER NOT NULL,
			price REAL NOT NULL,
			available BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE driver_availability (
			id TEXT PRIMARY KEY,
			instructor_id TEXT NOT NULL,
			availability_month TEXT NOT NULL,
			available_date DATE NOT NULL,
			time_slot TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'available',
			is_unavailable_day BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			learner_id TEXT NOT NULL,
			slot_id TEXT NOT NULL,
			status TEXT NOT NULL,
			payment_method TEXT,
			card_last4 TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			school_id TEXT NOT NULL,
			reviewer_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedSchool(t *testing.T, db *gorm.DB, school *model.School) *model.School {
	t.Helper()
	if school == nil {
		school = &model.School{}
	}
	if school.Name == "" {
		school.Name = "Test Driving School"
	}
	if err := db.Create(school).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	return school
}

func seedInstructor(t *testing.T, db *gorm.DB, schoolID uuid.UUID) *model.Instructor {
	t.Helper()
	inst := &model.Instructor{SchoolID: schoolID, Name: "Test Instructor"}
	if err := db.Create(inst).Error; err != nil {
		t.Fatalf("seed instructor: %v", err)
	}
	return inst
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{FullName: "Test Learner", Email: email, Role: model.UserRoleLearner}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

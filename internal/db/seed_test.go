package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
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

func TestSeedDemoData_PopulatesEmptyDatabase(t *testing.T) {
	db := newSeedTestDB(t)

	if err := SeedDemoData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	counts := map[string]int64{
		"schools":      4,
		"instructors":  4,
		"lesson_slots": 4,
		"users":        2,
		"reviews":      1,
	}
	for table, want := range counts {
		var got int64
		if err := db.Table(table).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Fatalf("%s rows = %d, want %d", table, got, want)
		}
	}

	// Instructors land on distinct schools.
	var distinct int64
	if err := db.Model(&model.Instructor{}).Distinct("school_id").Count(&distinct).Error; err != nil {
		t.Fatalf("count distinct schools: %v", err)
	}
	if distinct != 4 {
		t.Fatalf("instructors span %d schools, want 4", distinct)
	}

	var admin model.User
	if err := db.First(&admin, "email = ?", "admin@example.com").Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.Role != model.UserRoleAdmin {
		t.Fatalf("admin role = %q, want ADMIN", admin.Role)
	}
}

func TestSeedDemoData_SkipsNonEmptyDatabase(t *testing.T) {
	db := newSeedTestDB(t)

	existing := &model.School{Name: "Already Here"}
	if err := db.Create(existing).Error; err != nil {
		t.Fatalf("seed existing school: %v", err)
	}

	if err := SeedDemoData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var schools int64
	if err := db.Model(&model.School{}).Count(&schools).Error; err != nil {
		t.Fatalf("count schools: %v", err)
	}
	if schools != 1 {
		t.Fatalf("schools = %d, demo data must not load over existing data", schools)
	}
	var users int64
	if err := db.Model(&model.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 0 {
		t.Fatalf("users = %d, want 0", users)
	}
}

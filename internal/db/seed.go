package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// SeedDemoData loads the demo catalog on an empty database: four schools
// with one instructor and one upcoming slot each, a learner and an admin
// account, and one review. A database that already has schools is left
// untouched.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.School{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count schools: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		schools := []*model.School{
			{
				Name:                 "Urban Drive Academy",
				City:                 "Johannesburg",
				Address:              "123 Main Rd, Sandton",
				Description:          "Modern fleet, dual controls, nervous drivers welcome.",
				ContactPhone:         "+27 11 555 0101",
				PricePerLesson:       floatPtr(350),
				DefaultLessonMinutes: intPtr(60),
				Rating:               floatPtr(4.7),
			},
			{
				Name:                 "Coastal Driving School",
				City:                 "Cape Town",
				Address:              "45 Beach Ave, Sea Point",
				Description:          "Experienced instructors with automatic/manual options.",
				ContactPhone:         "+27 21 555 0202",
				PricePerLesson:       floatPtr(320),
				DefaultLessonMinutes: intPtr(60),
				Rating:               floatPtr(4.5),
			},
			{
				Name:                 "Midlands Driving Institute",
				City:                 "Durban",
				Address:              "88 Ridge Rd, Musgrave",
				Description:          "Friendly instructors, highway and city driving specialists.",
				ContactPhone:         "+27 31 555 0303",
				PricePerLesson:       floatPtr(300),
				DefaultLessonMinutes: intPtr(60),
				Rating:               floatPtr(4.4),
			},
			{
				Name:                 "Platinum Drive School",
				City:                 "Pretoria",
				Address:              "12 Paul Kruger St, Pretoria CBD",
				Description:          "Luxury vehicles, premium driving experience and K53 experts.",
				ContactPhone:         "+27 12 555 0404",
				PricePerLesson:       floatPtr(380),
				DefaultLessonMinutes: intPtr(60),
				Rating:               floatPtr(4.9),
			},
		}
		for _, s := range schools {
			if err := tx.Create(s).Error; err != nil {
				return fmt.Errorf("seed school %s: %w", s.Name, err)
			}
		}

		instructors := []*model.Instructor{
			{
				SchoolID: schools[0].ID,
				Name:     "Sipho Dlamini",
				Bio:      "10 years experience, patient with first-time learners.",
				Rating:   floatPtr(4.8),
			},
			{
				SchoolID: schools[1].ID,
				Name:     "Laila Khan",
				Bio:      "Defensive driving specialist, great with test prep.",
				Rating:   floatPtr(4.6),
			},
			{
				SchoolID: schools[2].ID,
				Name:     "Thabo Mokoena",
				Bio:      "Expert in night driving and highway confidence building.",
				Rating:   floatPtr(4.7),
			},
			{
				SchoolID: schools[3].ID,
				Name:     "Amelia Van Rensburg",
				Bio:      "Calm, structured lessons with excellent K53 pass rate.",
				Rating:   floatPtr(4.9),
			},
		}
		for _, i := range instructors {
			if err := tx.Create(i).Error; err != nil {
				return fmt.Errorf("seed instructor %s: %w", i.Name, err)
			}
		}

		// One upcoming slot per instructor, priced at the school rate.
		now := time.Now().UTC()
		starts := []struct {
			daysAhead int
			hour      int
			price     float64
		}{
			{1, 9, 350},
			{2, 14, 320},
			{3, 11, 300},
			{4, 10, 380},
		}
		for i, s := range starts {
			day := now.AddDate(0, 0, s.daysAhead)
			slot := &model.LessonSlot{
				InstructorID:    instructors[i].ID,
				StartTime:       time.Date(day.Year(), day.Month(), day.Day(), s.hour, 0, 0, 0, time.UTC),
				DurationMinutes: 60,
				Price:           s.price,
				Available:       true,
			}
			if err := tx.Create(slot).Error; err != nil {
				return fmt.Errorf("seed slot: %w", err)
			}
		}

		learner := &model.User{
			FullName: "Test Learner",
			Email:    "learner@example.com",
			Phone:    "0820000000",
			Role:     model.UserRoleLearner,
			Password: "password",
		}
		if err := tx.Create(learner).Error; err != nil {
			return fmt.Errorf("seed learner: %w", err)
		}
		admin := &model.User{
			FullName: "Admin User",
			Email:    "admin@example.com",
			Phone:    "0820000001",
			Role:     model.UserRoleAdmin,
			Password: "admin",
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}

		review := &model.Review{
			SchoolID:   schools[0].ID,
			ReviewerID: learner.ID,
			Rating:     5,
			Comment:    "Friendly instructor and clean car!",
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
		return nil
	})
}

package repository

import (
	"sync"
	"time"

	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/utils/auth"
)

// Demo account passwords, hashed once on first seed. Fresh installs log in
// with these and are expected to rotate them from the admin console.
var (
	demoHashOnce sync.Once
	demoHashes   map[string]string
)

func demoPasswordHash(email string) string {
	demoHashOnce.Do(func() {
		demoHashes = make(map[string]string)
		for email, password := range map[string]string{
			"admin@lernovate.com":   "admin123",
			"faculty@lernovate.com": "faculty123",
			"student@lernovate.com": "student123",
		} {
			hash, err := auth.HashPassword(password)
			if err != nil {
				continue
			}
			demoHashes[email] = hash
		}
	})
	return demoHashes[email]
}

func seedInstitutions() []model.Institution {
	return []model.Institution{
		{
			ID:        "1",
			Name:      "Kathmandu Public School",
			Email:     "admin@kps.edu.np",
			Phone:     "9800000000",
			Website:   "https://kps.edu.np",
			Address:   "Bagbazar, Kathmandu",
			LogoURL:   "/generic-school-logo.png",
			CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			Name:      "Pokhara Valley College",
			Email:     "info@pvc.edu.np",
			Phone:     "9856789012",
			Website:   "https://pvc.edu.np",
			Address:   "Lakeside, Pokhara",
			LogoURL:   "/generic-college-logo.png",
			CreatedAt: time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:        "3",
			Name:      "Chitwan International Academy",
			Email:     "contact@cia.edu.np",
			Phone:     "9845123456",
			Website:   "https://cia.edu.np",
			Address:   "Bharatpur, Chitwan",
			LogoURL:   "/generic-academy-logo.png",
			CreatedAt: time.Date(2025, 1, 8, 9, 15, 0, 0, time.UTC),
		},
	}
}

func seedCourses() []model.Course {
	now := time.Now().UTC()
	day := 24 * time.Hour
	week := 7 * day

	return []model.Course{
		{
			ID:              "1",
			Name:            "Introduction to Computer Science",
			Description:     "A comprehensive introduction to computer science fundamentals including programming, algorithms, and data structures.",
			Instructor:      "Dr. Sarah Johnson",
			InstructorID:    "2",
			Category:        "Computer Science",
			Duration:        "16 weeks",
			Level:           model.LevelBeginner,
			Status:          model.CourseStatusActive,
			EnrollmentCount: 45,
			MaxEnrollment:   60,
			StartDate:       now.Format(time.RFC3339),
			EndDate:         now.Add(16 * week).Format(time.RFC3339),
			Price:           15000,
			Thumbnail:       "/course-cs.png",
			InstitutionID:   "1",
			CreatedAt:       now.Add(-30 * day),
			UpdatedAt:       now,
		},
		{
			ID:              "2",
			Name:            "Advanced Mathematics",
			Description:     "Advanced mathematical concepts including calculus, linear algebra, and discrete mathematics for engineering students.",
			Instructor:      "Prof. Michael Chen",
			InstructorID:    "4",
			Category:        "Mathematics",
			Duration:        "12 weeks",
			Level:           model.LevelAdvanced,
			Status:          model.CourseStatusActive,
			EnrollmentCount: 28,
			MaxEnrollment:   40,
			StartDate:       now.Add(week).Format(time.RFC3339),
			EndDate:         now.Add(19 * week).Format(time.RFC3339),
			Price:           18000,
			Thumbnail:       "/course-math.png",
			InstitutionID:   "2",
			CreatedAt:       now.Add(-20 * day),
			UpdatedAt:       now.Add(-5 * day),
		},
		{
			ID:              "3",
			Name:            "Digital Marketing Fundamentals",
			Description:     "Learn the basics of digital marketing including SEO, social media marketing, and content strategy.",
			Instructor:      "Emma Wilson",
			InstructorID:    "5",
			Category:        "Business",
			Duration:        "8 weeks",
			Level:           model.LevelBeginner,
			Status:          model.CourseStatusActive,
			EnrollmentCount: 67,
			MaxEnrollment:   80,
			StartDate:       now.Add(-2 * week).Format(time.RFC3339),
			EndDate:         now.Add(6 * week).Format(time.RFC3339),
			Price:           12000,
			Thumbnail:       "/course-marketing.png",
			InstitutionID:   "1",
			CreatedAt:       now.Add(-45 * day),
			UpdatedAt:       now.Add(-10 * day),
		},
		{
			ID:              "4",
			Name:            "Web Development Bootcamp",
			Description:     "Full-stack web development course covering HTML, CSS, JavaScript, React, Node.js, and databases.",
			Instructor:      "David Brown",
			InstructorID:    "6",
			Category:        "Technology",
			Duration:        "20 weeks",
			Level:           model.LevelIntermediate,
			Status:          model.CourseStatusDraft,
			EnrollmentCount: 0,
			MaxEnrollment:   50,
			StartDate:       now.Add(30 * day).Format(time.RFC3339),
			EndDate:         now.Add(50 * week).Format(time.RFC3339),
			Price:           25000,
			Thumbnail:       "/course-webdev.png",
			InstitutionID:   "1",
			CreatedAt:       now.Add(-10 * day),
			UpdatedAt:       now.Add(-2 * day),
		},
	}
}

func seedUsers() []model.User {
	now := time.Now().UTC()
	day := 24 * time.Hour
	at := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}

	return []model.User{
		{
			ID:           "1",
			Name:         "System Administrator",
			Email:        "admin@lernovate.com",
			Role:         model.RoleAdmin,
			Phone:        "9800000001",
			Avatar:       "/admin-avatar.png",
			Status:       model.UserStatusActive,
			PasswordHash: demoPasswordHash("admin@lernovate.com"),
			CreatedAt:    now,
			LastLogin:    at(0),
		},
		{
			ID:            "2",
			Name:          "Dr. Sarah Johnson",
			Email:         "faculty@lernovate.com",
			Role:          model.RoleFaculty,
			InstitutionID: "1",
			Phone:         "9800000002",
			Avatar:        "/faculty-avatar.png",
			Status:        model.UserStatusActive,
			PasswordHash:  demoPasswordHash("faculty@lernovate.com"),
			CreatedAt:     now.Add(-day),
			LastLogin:     at(time.Hour),
		},
		{
			ID:            "3",
			Name:          "John Smith",
			Email:         "student@lernovate.com",
			Role:          model.RoleStudent,
			InstitutionID: "1",
			Phone:         "9800000003",
			Avatar:        "/student-avatar.png",
			Status:        model.UserStatusActive,
			PasswordHash:  demoPasswordHash("student@lernovate.com"),
			CreatedAt:     now.Add(-2 * day),
			LastLogin:     at(2 * time.Hour),
		},
		{
			ID:            "4",
			Name:          "Prof. Michael Chen",
			Email:         "michael.chen@lernovate.com",
			Role:          model.RoleFaculty,
			InstitutionID: "2",
			Phone:         "9800000004",
			Avatar:        "/faculty-avatar.png",
			Status:        model.UserStatusActive,
			CreatedAt:     now.Add(-3 * day),
			LastLogin:     at(day),
		},
		{
			ID:            "5",
			Name:          "Emma Wilson",
			Email:         "emma.wilson@lernovate.com",
			Role:          model.RoleStudent,
			InstitutionID: "1",
			Phone:         "9800000005",
			Avatar:        "/student-avatar.png",
			Status:        model.UserStatusActive,
			CreatedAt:     now.Add(-4 * day),
			LastLogin:     at(3 * time.Hour),
		},
		{
			ID:            "6",
			Name:          "David Brown",
			Email:         "david.brown@lernovate.com",
			Role:          model.RoleStudent,
			InstitutionID: "2",
			Phone:         "9800000006",
			Avatar:        "/student-avatar.png",
			Status:        model.UserStatusSuspended,
			CreatedAt:     now.Add(-5 * day),
			LastLogin:     at(2 * day),
		},
	}
}

func seedSettings() []model.Setting {
	now := time.Now().UTC()
	s := func(key, value, description, category string) model.Setting {
		return model.Setting{Key: key, Value: value, Description: description, Category: category, UpdatedAt: now}
	}

	return []model.Setting{
		s("language", "en", "Default interface language", "system"),
		s("timezone", "Asia/Kathmandu", "Platform timezone", "system"),
		s("date_format", "MM/DD/YYYY", "Display format for dates", "system"),
		s("maintenance_mode", "false", "Disable the console for non-admins", "system"),
		s("registration_enabled", "true", "Allow self-service registration", "system"),
		s("auto_backup", "true", "Run the daily data snapshot job", "system"),
		s("session_timeout", "30", "Idle session timeout in minutes", "security"),
		s("login_attempts", "5", "Failed logins before lockout", "security"),
	}
}

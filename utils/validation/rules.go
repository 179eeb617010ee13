package validation

import (
	"time"

	"github.com/lernovate/admin-api/model"
)

// Rule functions are pure: they take a candidate field set and return a
// field->message map. An empty map means the input is valid. They run
// entirely before any repository mutation.

// InstitutionInput is the candidate field set for institution create/update.
type InstitutionInput struct {
	Name    string
	Email   string
	Phone   string
	Website string
	Address string
	LogoURL string
}

// InstitutionRules validates an institution field set.
func InstitutionRules(in InstitutionInput) map[string]string {
	errs := make(map[string]string)

	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if in.Email == "" {
		errs["email"] = "Email is required"
	} else if !ValidateEmail(in.Email) {
		errs["email"] = "Invalid email format"
	}
	if in.Address == "" {
		errs["address"] = "Address is required"
	}
	if in.Phone != "" && !ValidatePhone(in.Phone) {
		errs["phone"] = "Phone number should contain only digits"
	}
	if in.Website != "" && !ValidateURL(in.Website) {
		errs["website"] = "Please enter a valid URL (e.g., https://example.com)"
	}
	if in.LogoURL != "" && !ValidateURL(in.LogoURL) && in.LogoURL[0] != '/' {
		errs["logoUrl"] = "Logo must be a URL or an absolute path"
	}

	return errs
}

// CourseInput is the candidate field set for course create/update. For
// updates the caller passes the merged view of the existing record and the
// patch, so cross-field rules see the final state.
type CourseInput struct {
	Name          string
	Description   string
	Instructor    string
	Category      string
	Duration      string
	Level         string
	Status        string
	MaxEnrollment int
	StartDate     string
	EndDate       string
	Price         float64
	Thumbnail     string
}

// CourseRules validates a course field set.
func CourseRules(in CourseInput) map[string]string {
	errs := make(map[string]string)

	if in.Name == "" {
		errs["name"] = "Course name is required"
	}
	if in.Description == "" {
		errs["description"] = "Description is required"
	}
	if in.Instructor == "" {
		errs["instructor"] = "Instructor name is required"
	}
	if in.Category == "" {
		errs["category"] = "Category is required"
	}
	if in.Duration == "" {
		errs["duration"] = "Duration is required"
	}
	if in.Level != "" && in.Level != model.LevelBeginner && in.Level != model.LevelIntermediate && in.Level != model.LevelAdvanced {
		errs["level"] = "Level must be beginner, intermediate or advanced"
	}
	if in.Status != "" && in.Status != model.CourseStatusActive && in.Status != model.CourseStatusInactive && in.Status != model.CourseStatusDraft {
		errs["status"] = "Status must be active, inactive or draft"
	}
	if in.StartDate == "" {
		errs["startDate"] = "Start date is required"
	}
	if in.EndDate == "" {
		errs["endDate"] = "End date is required"
	}
	if in.StartDate != "" && in.EndDate != "" {
		start, startErr := ParseDate(in.StartDate)
		end, endErr := ParseDate(in.EndDate)
		if startErr != nil {
			errs["startDate"] = "Start date is not a valid date"
		}
		if endErr != nil {
			errs["endDate"] = "End date is not a valid date"
		}
		if startErr == nil && endErr == nil && !start.Before(end) {
			errs["endDate"] = "End date must be after start date"
		}
	}
	if in.MaxEnrollment <= 0 {
		errs["maxEnrollment"] = "Max enrollment must be greater than 0"
	}
	if in.Price < 0 {
		errs["price"] = "Price cannot be negative"
	}
	if in.Thumbnail != "" && !ValidateURL(in.Thumbnail) && in.Thumbnail[0] != '/' {
		errs["thumbnail"] = "Thumbnail must be a URL or an absolute path"
	}

	return errs
}

// UserInput is the candidate field set for user create/update.
type UserInput struct {
	Name   string
	Email  string
	Role   string
	Phone  string
	Avatar string
	Status string
}

// UserRules validates a user field set.
func UserRules(in UserInput) map[string]string {
	errs := make(map[string]string)

	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if in.Email == "" {
		errs["email"] = "Email is required"
	} else if !ValidateEmail(in.Email) {
		errs["email"] = "Invalid email format"
	}
	if in.Role == "" {
		errs["role"] = "Role is required"
	} else if !model.ValidRole(in.Role) {
		errs["role"] = "Role must be admin, faculty or student"
	}
	if in.Phone != "" && !ValidatePhone(in.Phone) {
		errs["phone"] = "Phone number should contain only digits"
	}
	if in.Avatar != "" && !ValidateURL(in.Avatar) && in.Avatar[0] != '/' {
		errs["avatar"] = "Avatar must be a URL or an absolute path"
	}
	if in.Status != "" && !model.ValidUserStatus(in.Status) {
		errs["status"] = "Status must be active, inactive or suspended"
	}

	return errs
}

// dateLayouts are the accepted date formats: full timestamps from the API
// and plain dates from admin console forms.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a course date in any accepted layout.
func ParseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

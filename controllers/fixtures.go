package controllers

import (
	"time"

	"github.com/PrayerBridge/models"
)

// Test fixture data for use in tests

// MockProfile creates a sample member profile for testing
func MockProfile() models.Profile {
	return models.Profile{
		User_Profile_ID:  1,
		Name:             "Test User",
		Email:            "test@example.com",
		Role:             models.RoleUser,
		Provider:         "google.com",
		Provider_User_ID: "google-uid-1",
		Agreed_To_Pledge: false,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}
}

// MockIntercessorProfile creates a sample intercessor for testing
func MockIntercessorProfile() models.Profile {
	return models.Profile{
		User_Profile_ID:  2,
		Name:             "Test Intercessor",
		Email:            "intercessor@example.com",
		Role:             models.RoleIntercessor,
		Provider:         "google.com",
		Provider_User_ID: "google-uid-2",
		Agreed_To_Pledge: true,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}
}

// MockAdminProfile creates a sample admin for testing
func MockAdminProfile() models.Profile {
	return models.Profile{
		User_Profile_ID:  3,
		Name:             "Test Admin",
		Email:            "admin@example.com",
		Role:             models.RoleAdmin,
		Provider:         "google.com",
		Provider_User_ID: "google-uid-3",
		Agreed_To_Pledge: true,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}
}

// MockSuperadminProfile creates a sample superadmin for testing
func MockSuperadminProfile() models.Profile {
	return models.Profile{
		User_Profile_ID:  4,
		Name:             "Test Superadmin",
		Email:            "superadmin@example.com",
		Role:             models.RoleSuperadmin,
		Provider:         "google.com",
		Provider_User_ID: "google-uid-4",
		Agreed_To_Pledge: true,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}
}

// MockPrayer creates a sample pending prayer owned by MockProfile
func MockPrayer() models.Prayer {
	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	return models.Prayer{
		Prayer_ID:          1,
		Title:              "Family health",
		Prayer_Description: "Please pray for my family's health.",
		Deadline:           &deadline,
		Is_Anonymous:       false,
		Status:             models.StatusPending,
		Requested_By:       1,
		Prayer_Category_ID: 1,
		Datetime_Create:    time.Now(),
		Datetime_Update:    time.Now(),
	}
}

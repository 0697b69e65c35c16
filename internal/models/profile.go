package models

// Profile holds the rider's personal data and monthly profit goal
type Profile struct {
	UserID      string   `json:"user_id" db:"user_id"`
	Name        string   `json:"name" db:"name"`
	Email       string   `json:"email" db:"email"`
	Whatsapp    *string  `json:"whatsapp" db:"whatsapp"`
	City        *string  `json:"city" db:"city"`
	MonthlyGoal *float64 `json:"monthly_goal" db:"monthly_goal"`
	CreatedAt   int64    `json:"created_at" db:"created_at"`
	UpdatedAt   int64    `json:"updated_at" db:"updated_at"`
}

type UpdateProfileRequest struct {
	Name        *string  `json:"name"`
	Whatsapp    *string  `json:"whatsapp"`
	City        *string  `json:"city"`
	MonthlyGoal *float64 `json:"monthly_goal"`
}

// DeviceToken represents a Firebase Cloud Messaging token for a user
type DeviceToken struct {
	ID         string `json:"id" db:"id"`
	UserID     string `json:"user_id" db:"user_id"`
	Token      string `json:"token" db:"token"`
	DeviceType string `json:"device_type" db:"device_type"` // "ios" or "android"
	CreatedAt  int64  `json:"created_at" db:"created_at"`
	UpdatedAt  int64  `json:"updated_at" db:"updated_at"`
}

type RegisterDeviceRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

package client

import "time"

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	EnergyLevel string     `json:"energyLevel"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
}

type NewTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	EnergyLevel string     `json:"energyLevel,omitempty"`
	Category    string     `json:"category,omitempty"`
	Priority    int        `json:"priority,omitempty"`
}

type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	EnergyLevel *string    `json:"energyLevel,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
}

type TaskFilter struct {
	Status    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

type AccessibilitySettings struct {
	Theme            string `json:"theme"`
	FontFamily       string `json:"fontFamily"`
	FontSize         int    `json:"fontSize"`
	MotionReduced    bool   `json:"motionReduced"`
	HighContrast     bool   `json:"highContrast"`
	ScreenReaderMode bool   `json:"screenReaderMode"`
}

type SettingsUpdate struct {
	Theme            *string `json:"theme,omitempty"`
	FontFamily       *string `json:"fontFamily,omitempty"`
	FontSize         *int    `json:"fontSize,omitempty"`
	MotionReduced    *bool   `json:"motionReduced,omitempty"`
	HighContrast     *bool   `json:"highContrast,omitempty"`
	ScreenReaderMode *bool   `json:"screenReaderMode,omitempty"`
}

package dto

type PlatformStats struct {
	Users         int64            `json:"users"`
	VerifiedUsers int64            `json:"verified_users"`
	Announcements map[string]int64 `json:"announcements"`
	Trips         map[string]int64 `json:"trips"`
	Alerts        int64            `json:"alerts"`
	Notifications int64            `json:"notifications"`
}

type VerifyUserRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// AlertRunReport - итог одного прохода воркера алертов
type AlertRunReport struct {
	AlertsProcessed   int `json:"alerts_processed"`
	AlertsFailed      int `json:"alerts_failed"`
	NotificationsSent int `json:"notifications_sent"`
}

package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	AnnouncementService AnnouncementService
	TripService         TripService
	AlertService        AlertService
	MatchingService     MatchingService
	ReviewService       ReviewService
	NotificationService NotificationService
	AdminService        AdminService
}

package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler       *HealthHandler
	AuthHandler         *AuthHandler
	AnnouncementHandler *AnnouncementHandler
	TripHandler         *TripHandler
	AlertHandler        *AlertHandler
	MatchingHandler     *MatchingHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
}

package services

import (
	"shippertrip_backend/internal/algorithms"
	"shippertrip_backend/internal/models"
)

func toPlace(p models.Place) algorithms.Place {
	return algorithms.Place{City: p.City, Country: p.Country}
}

func cityPlace(city *string) algorithms.Place {
	if city == nil {
		return algorithms.Place{}
	}
	return algorithms.Place{City: *city}
}

func announcementSide(a *models.Announcement) algorithms.AnnouncementSide {
	return algorithms.AnnouncementSide{
		From:   toPlace(a.From),
		To:     toPlace(a.To),
		Window: algorithms.Window{From: a.DateFrom, To: a.DateTo},
	}
}

// tripSide берет рейтинг и верификацию путешественника, если он загружен
func tripSide(t *models.Trip) algorithms.TripSide {
	side := algorithms.TripSide{
		From:   toPlace(t.From),
		To:     toPlace(t.To),
		Window: algorithms.Window{From: t.DepartureDate, To: t.ArrivalDate},
	}
	if t.User != nil {
		side.Rating = t.User.Rating
		verified := t.User.IsVerified
		side.Verified = &verified
	}
	return side
}

// impliedAnnouncement - sender-алерт как объявление: его города и окно.
// Незаданный город остается пустым и не совпадает ни с одним кандидатом.
func impliedAnnouncement(alert *models.Alert) algorithms.AnnouncementSide {
	return algorithms.AnnouncementSide{
		From:   cityPlace(alert.FromCity),
		To:     cityPlace(alert.ToCity),
		Window: algorithms.Window{From: alert.DateFrom, To: alert.DateTo},
	}
}

// impliedTrip - shipper-алерт как поездка его владельца: рейтинг и
// верификация берутся у владельца алерта.
func impliedTrip(alert *models.Alert, owner *models.User) algorithms.TripSide {
	side := algorithms.TripSide{
		From:   cityPlace(alert.FromCity),
		To:     cityPlace(alert.ToCity),
		Window: algorithms.Window{From: alert.DateFrom, To: alert.DateTo},
	}
	if owner != nil {
		side.Rating = owner.Rating
		verified := owner.IsVerified
		side.Verified = &verified
	}
	return side
}

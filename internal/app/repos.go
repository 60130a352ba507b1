package app

import (
	"gorm.io/gorm"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/repos"
)

type Repos struct {
	Application       repos.ApplicationRepo
	BookingHotel      repos.BookingHotelRepo
	LetterExample     repos.LetterExampleRepo
	Setting           repos.SettingRepo
	GeneratedDocument repos.GeneratedDocumentRepo
	AutomationJob     repos.AutomationJobRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Application:       repos.NewApplicationRepo(db, log),
		BookingHotel:      repos.NewBookingHotelRepo(db, log),
		LetterExample:     repos.NewLetterExampleRepo(db, log),
		Setting:           repos.NewSettingRepo(db, log),
		GeneratedDocument: repos.NewGeneratedDocumentRepo(db, log),
		AutomationJob:     repos.NewAutomationJobRepo(db, log),
	}
}

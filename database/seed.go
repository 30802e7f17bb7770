package database

import (
	"log"

	"playground_store/constants"
	"playground_store/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	users := []model.User{
		{Name: "Administrator", Email: "admin@playgroundstore.in", Phone: "9000000001", Password: hashPassword, Role: constants.ROLE_ADMIN, IsActive: true},
		{Name: "Installation Crew A", Email: "crew-a@playgroundstore.in", Phone: "9000000002", Password: hashPassword, Role: constants.ROLE_INSTALLATION_TEAM, IsActive: true},
	}

	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
		}
	}

	equipment := []model.Equipment{
		{
			Name: "Double Bay Swing Set", Slug: "double-bay-swing-set", Category: "Swings",
			Description: "Galvanised steel frame with four flat seats.", Price: 48000,
			Stock: 10, IsAvailable: true, InstallationRequired: true, InstallationTime: 1,
			Warranty: &model.Warranty{Duration: 24, Unit: "months"},
		},
		{
			Name: "Wave Slide 3m", Slug: "wave-slide-3m", Category: "Slides",
			Description: "Fibreglass wave slide with wide run-out.", Price: 36500,
			Stock: 6, IsAvailable: true, InstallationRequired: true, InstallationTime: 1,
		},
		{
			Name: "Rope Climbing Pyramid", Slug: "rope-climbing-pyramid", Category: "Climbing Equipment",
			Description: "Four metre rope pyramid with tensioned nets.", Price: 125000,
			Stock: 3, IsAvailable: true, InstallationRequired: true, InstallationTime: 2,
		},
		{
			Name: "Spring Rider Pony", Slug: "spring-rider-pony", Category: "Spring Riders",
			Description: "Single seat spring rider, HDPE body.", Price: 14500,
			Stock: 20, IsAvailable: true, InstallationRequired: false,
		},
	}

	for _, item := range equipment {
		if err := db.Where(model.Equipment{Slug: item.Slug}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed equipment:", item.Name, "error:", err)
		}
	}
}

package model

type Equipment struct {
	DTO
	Name                 string          `gorm:"size:100;not null" json:"name"`
	Slug                 string          `gorm:"size:120;uniqueIndex" json:"slug"`
	Description          string          `gorm:"size:1000" json:"description"`
	Category             string          `gorm:"size:50;not null" json:"category"`
	Price                float64         `gorm:"not null" json:"price"`
	Image                string          `gorm:"default:'no-image.jpg'" json:"image"`
	Images               []string        `gorm:"type:json;serializer:json" json:"images"`
	Specifications       *Specifications `gorm:"type:json;serializer:json" json:"specifications,omitempty"`
	Stock                int             `gorm:"not null;default:0" json:"stock"`
	IsAvailable          bool            `gorm:"not null;default:true" json:"isAvailable"`
	InstallationRequired bool            `gorm:"not null;default:true" json:"installationRequired"`
	InstallationTime     int             `gorm:"default:1" json:"installationTime"` // days
	Warranty             *Warranty       `gorm:"type:json;serializer:json" json:"warranty,omitempty"`
}

type Specifications struct {
	Dimensions     *Dimensions `json:"dimensions,omitempty"`
	Material       string      `json:"material,omitempty"`
	AgeGroupMin    int         `json:"ageGroupMin,omitempty"`
	AgeGroupMax    int         `json:"ageGroupMax,omitempty"`
	Capacity       int         `json:"capacity,omitempty"`
	Weight         float64     `json:"weight,omitempty"`
	Colors         []string    `json:"colors,omitempty"`
	SafetyFeatures []string    `json:"safetyFeatures,omitempty"`
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

type Warranty struct {
	Duration int    `json:"duration"`
	Unit     string `json:"unit"`
}

type CreateEquipmentInput struct {
	Name                 string          `json:"name" validate:"required,max=100"`
	Description          string          `json:"description" validate:"required,max=1000"`
	Category             string          `json:"category" validate:"required"`
	Price                float64         `json:"price" validate:"gte=0"`
	Image                string          `json:"image"`
	Images               []string        `json:"images"`
	Specifications       *Specifications `json:"specifications"`
	Stock                int             `json:"stock" validate:"gte=0"`
	InstallationRequired *bool           `json:"installationRequired"`
	InstallationTime     int             `json:"installationTime"`
	Warranty             *Warranty       `json:"warranty"`
}

type UpdateEquipmentInput struct {
	Name                 *string         `json:"name" validate:"omitempty,max=100"`
	Description          *string         `json:"description" validate:"omitempty,max=1000"`
	Category             *string         `json:"category"`
	Price                *float64        `json:"price" validate:"omitempty,gte=0"`
	Image                *string         `json:"image"`
	Images               []string        `json:"images"`
	Specifications       *Specifications `json:"specifications"`
	InstallationRequired *bool           `json:"installationRequired"`
	InstallationTime     *int            `json:"installationTime"`
	Warranty             *Warranty       `json:"warranty"`
}

type UpdateStockInput struct {
	Stock int `json:"stock" validate:"gte=0"`
}

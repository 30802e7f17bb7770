package model

import "time"

type Installation struct {
	DTO
	PublicCode string `gorm:"size:20;uniqueIndex" json:"publicCode"` // INS-XXXXXXXX
	OrderId    uint   `gorm:"not null;uniqueIndex" json:"orderId"`   // one installation per order
	Order      *Order `gorm:"foreignKey:OrderId" json:"order,omitempty"`
	TeamId     uint   `gorm:"not null;index" json:"teamId"`
	Team       *User  `gorm:"foreignKey:TeamId" json:"team,omitempty"`
	CustomerId uint   `gorm:"not null;index" json:"customerId"`
	Customer   *User  `gorm:"foreignKey:CustomerId" json:"customer,omitempty"`

	ScheduledDate time.Time      `gorm:"not null" json:"scheduledDate"`
	ScheduledTime *ScheduledTime `gorm:"type:json;serializer:json" json:"scheduledTime,omitempty"`

	Status   string                `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Location *InstallationLocation `gorm:"type:json;serializer:json" json:"location,omitempty"`

	EquipmentList []InstallationEquipment `gorm:"foreignKey:InstallationId;constraint:OnDelete:CASCADE" json:"equipmentList"`

	Notes            string            `json:"notes"`
	TeamNotes        string            `json:"teamNotes"`
	CustomerFeedback *CustomerFeedback `gorm:"type:json;serializer:json" json:"customerFeedback,omitempty"`

	StartTime         *time.Time `json:"startTime,omitempty"`
	CompletedDate     *time.Time `json:"completedDate,omitempty"`
	EstimatedDuration *int       `json:"estimatedDuration,omitempty"` // hours

	StatusHistory []InstallationStatusLog `gorm:"foreignKey:InstallationId;constraint:OnDelete:CASCADE" json:"statusHistory"`
}

type Installations []Installation

type ScheduledTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type InstallationLocation struct {
	Address            Address      `json:"address"`
	Coordinates        *Coordinates `json:"coordinates,omitempty"`
	Landmark           string       `json:"landmark,omitempty"`
	AccessInstructions string       `json:"accessInstructions,omitempty"`
}

// InstallationEquipment is snapshotted from the order's line items at
// scheduling time; per-item progress is tracked independently.
type InstallationEquipment struct {
	DTO
	InstallationId     uint   `gorm:"not null;index" json:"installationId"`
	EquipmentId        uint   `gorm:"not null" json:"equipmentId"`
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	InstallationStatus string `gorm:"size:20;not null;default:'pending'" json:"installationStatus"`
}

type InstallationStatusLog struct {
	DTO
	InstallationId uint      `gorm:"not null;index" json:"installationId"`
	Status         string    `gorm:"size:20;not null" json:"status"`
	Note           string    `json:"note"`
	At             time.Time `json:"at"`
	UpdatedBy      uint      `json:"updatedBy"`
}

type CustomerFeedback struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

type ScheduleInstallationInput struct {
	OrderId           uint                  `json:"orderId" validate:"required"`
	TeamId            uint                  `json:"teamId" validate:"required"`
	ScheduledDate     time.Time             `json:"scheduledDate" validate:"required"`
	ScheduledTime     *ScheduledTime        `json:"scheduledTime"`
	Location          *InstallationLocation `json:"location"`
	Notes             string                `json:"notes"`
	EstimatedDuration *int                  `json:"estimatedDuration" validate:"omitempty,gt=0"`
}

type UpdateInstallationStatusInput struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress on_hold completed cancelled"`
	Note   string `json:"note"`
}

type UpdateEquipmentStatusInput struct {
	EquipmentId uint   `json:"equipmentId" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

type TeamNotesInput struct {
	TeamNotes string `json:"teamNotes" validate:"required"`
}

type CustomerFeedbackInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

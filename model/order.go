package model

import "time"

type Order struct {
	DTO
	OrderNumber string `gorm:"size:16;uniqueIndex" json:"orderNumber"` // PG<yy><mm><4 digits>
	UserId      uint   `gorm:"not null;index" json:"userId"`
	User        *User  `gorm:"foreignKey:UserId" json:"user,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE" json:"items"`

	TotalAmount    float64 `gorm:"not null" json:"totalAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	ShippingAmount float64 `json:"shippingAmount"`
	GrandTotal     float64 `gorm:"not null" json:"grandTotal"`

	ShippingAddress Address `gorm:"type:json;serializer:json" json:"shippingAddress"`

	Status        string `gorm:"size:32;not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"paymentStatus"`
	PaymentMethod string `gorm:"size:20;not null;default:'cod'" json:"paymentMethod"`

	Notes                string                `json:"notes"`
	InstallationLocation *InstallationSite     `gorm:"type:json;serializer:json" json:"installationLocation,omitempty"`
	LayoutImage          string                `json:"layoutImage"`
	LayoutNotes          string                `json:"layoutNotes"`
	StatusHistory        []OrderStatusLog      `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE" json:"statusHistory"`
}

type Orders []Order

// OrderItem is a snapshot of the equipment at order time; the equipment row
// may be edited or retired afterwards without touching placed orders.
type OrderItem struct {
	DTO
	OrderId     uint    `gorm:"not null;index" json:"orderId"`
	EquipmentId uint    `gorm:"not null" json:"equipmentId"`
	Name        string  `json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       string  `json:"image"`
	Quantity    int     `gorm:"not null" json:"quantity"`
}

type OrderStatusLog struct {
	DTO
	OrderId   uint      `gorm:"not null;index" json:"orderId"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	Note      string    `json:"note"`
	At        time.Time `json:"at"`
	UpdatedBy uint      `json:"updatedBy"`
}

type InstallationSite struct {
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type CreateOrderInput struct {
	Items                []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingAddress      ShippingAddressInput   `json:"shippingAddress" validate:"required"`
	PaymentMethod        string                 `json:"paymentMethod" validate:"omitempty,oneof=cod online bank_transfer"`
	Notes                string                 `json:"notes"`
	InstallationLocation *InstallationSite      `json:"installationLocation"`
	LayoutImage          string                 `json:"layoutImage"`
	LayoutNotes          string                 `json:"layoutNotes"`
}

type CreateOrderItemInput struct {
	EquipmentId uint `json:"equipmentId" validate:"required"`
	Quantity    int  `json:"quantity" validate:"required,min=1"`
}

type ShippingAddressInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered installation_scheduled installation_in_progress completed cancelled"`
	Note   string `json:"note"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid failed refunded"`
}

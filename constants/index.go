package constants

const (
	ROLE_CUSTOMER          = "customer"
	ROLE_ADMIN             = "admin"
	ROLE_INSTALLATION_TEAM = "installation_team"
)

const (
	ORDER_PENDING                  = "pending"
	ORDER_CONFIRMED                = "confirmed"
	ORDER_PROCESSING               = "processing"
	ORDER_SHIPPED                  = "shipped"
	ORDER_DELIVERED                = "delivered"
	ORDER_INSTALLATION_SCHEDULED   = "installation_scheduled"
	ORDER_INSTALLATION_IN_PROGRESS = "installation_in_progress"
	ORDER_COMPLETED                = "completed"
	ORDER_CANCELLED                = "cancelled"
)

const (
	PAYMENT_PENDING  = "pending"
	PAYMENT_PAID     = "paid"
	PAYMENT_FAILED   = "failed"
	PAYMENT_REFUNDED = "refunded"
)

const (
	PAYMENT_METHOD_COD           = "cod"
	PAYMENT_METHOD_ONLINE        = "online"
	PAYMENT_METHOD_BANK_TRANSFER = "bank_transfer"
)

const (
	INSTALLATION_SCHEDULED   = "scheduled"
	INSTALLATION_IN_PROGRESS = "in_progress"
	INSTALLATION_ON_HOLD     = "on_hold"
	INSTALLATION_COMPLETED   = "completed"
	INSTALLATION_CANCELLED   = "cancelled"
)

const (
	EQUIPMENT_ITEM_PENDING     = "pending"
	EQUIPMENT_ITEM_IN_PROGRESS = "in_progress"
	EQUIPMENT_ITEM_COMPLETED   = "completed"
)

var EquipmentCategories = []string{
	"Swings",
	"Slides",
	"Climbing Equipment",
	"Seesaws",
	"Merry-Go-Rounds",
	"Spring Riders",
	"Playhouses",
	"Sand Play",
	"Water Play",
	"Sports Equipment",
	"Fitness Equipment",
	"Inclusive Play",
	"Other",
}

const (
	ERROR_INTERNAL_ERROR = "Server error"
	MISSING_LOGIN_INPUT  = "Email and password are required"
	INVALID_CREDENTIALS  = "Invalid email or password"
	ACCOUNT_NOT_ACTIVE   = "Account has been deactivated"

	EQUIPMENT_NOT_FOUND    = "Equipment not found"
	ORDER_NOT_FOUND        = "Order not found"
	INSTALLATION_NOT_FOUND = "Installation not found"
	USER_NOT_FOUND         = "User not found"
)

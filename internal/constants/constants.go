package constants

// Order status constants. Statuses follow the fulfilment flow of the
// storefront: an order starts unpaid and either completes or is canceled.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusDikemas    = "DIKEMAS"
	OrderStatusDikirim    = "DIKIRIM"
	OrderStatusSelesai    = "SELESAI"
	OrderStatusDibatalkan = "DIBATALKAN"
)

// Shipment status constants.
const (
	ShipmentStatusPending   = "PENDING"
	ShipmentStatusConfirmed = "CONFIRMED"
)

// Payment transaction status constants, mirroring the gateway vocabulary.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusCapture    = "capture"
	PaymentStatusSettlement = "settlement"
	PaymentStatusDeny       = "deny"
	PaymentStatusCancel     = "cancel"
	PaymentStatusExpire     = "expire"
)

// Gateway fraud status constants.
const (
	FraudStatusAccept    = "accept"
	FraudStatusChallenge = "challenge"
)

// User role constants.
const (
	RoleCustomer = "CUSTOMER"
	RoleGudang   = "GUDANG"
	RoleAdmin    = "ADMIN"
)

// Password reset purpose constants.
const (
	ResetPurposePassword = "password_reset"
)

// Queue constants.
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
	TaskResetCodeEmail   = "auth:reset_code_email"
)

// Cache default configuration constants.
const (
	RedisPrefixDefault = "tg"
)

// Report export format constants.
const (
	ExportFormatCSV  = "csv"
	ExportFormatHTML = "html"
)

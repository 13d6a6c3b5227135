package shared

const (
	UserID = "user_id"

	RoleAdmin = "admin"

	EventStatue       = "statue"
	EventLanguage     = "language"
	EventPowerOff     = "power_off"
	EventUnclassified = "unclassified"
)

package constant

// NotificationType tags the kind of in-app notification.
type NotificationType string

const (
	// NotificationTimeToTake is raised when a schedule fires.
	NotificationTimeToTake NotificationType = "time_to_take"
	// NotificationLowStock is raised once per day while stock is at or below threshold.
	NotificationLowStock NotificationType = "low_stock"
)

func (t NotificationType) String() string {
	return string(t)
}

package evaluator

import (
	"fmt"

	"pillulu/internal/domain/constant"
	"pillulu/internal/domain/entity"
)

// TimeToTakeNotification builds the notice raised when a schedule fires.
func TimeToTakeNotification(med *entity.Medication, timeOfDay string) *entity.Notification {
	return &entity.Notification{
		UserID:  ownerOf(med),
		Type:    constant.NotificationTimeToTake,
		Title:   fmt.Sprintf("⏰ Time to take %s", med.Name),
		Message: fmt.Sprintf("It's %s — time to take %s. Please take your medication as scheduled.", timeOfDay, med.Name),
	}
}

// LowStockNotification builds the daily low-stock notice.
func LowStockNotification(med *entity.Medication) *entity.Notification {
	return &entity.Notification{
		UserID:  ownerOf(med),
		Type:    constant.NotificationLowStock,
		Title:   fmt.Sprintf("⚠️ Low stock - %s", med.Name),
		Message: fmt.Sprintf("%s is running low. Current stock: %d, alert threshold: %d. Please restock soon.", med.Name, med.StockCount, med.LowStockThreshold),
	}
}

func ownerOf(med *entity.Medication) *uint {
	if med.UserID == 0 {
		return nil
	}
	id := med.UserID
	return &id
}

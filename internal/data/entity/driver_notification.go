package entity

import "github.com/google/uuid"

type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

type DriverNotification struct {
	BaseSimple
	TransferID uuid.UUID          `db:"transfer_id"`
	DriverID   uuid.UUID          `db:"driver_id"`
	Message    string             `db:"message"`
	Status     NotificationStatus `db:"status"`
}

package domain

type OrderStatusType string

const (
	OrderStatusPending   OrderStatusType = "PENDING"
	OrderStatusCompleted OrderStatusType = "COMPLETED"
	OrderStatusCancelled OrderStatusType = "CANCELLED"
)

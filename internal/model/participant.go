package model

import "time"

// Participant is a registered runner. A row exists only after the payment
// behind it was signature-verified and reported captured by the gateway;
// rows are never updated or deleted.
type Participant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"index"`
	Phone       string    `json:"phone"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Category    string    `json:"category"`
	PaymentID   string    `json:"payment_id" gorm:"uniqueIndex"`
	ChestNumber int       `json:"chest_number" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
}

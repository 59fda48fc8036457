package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxIDNumberLength bounds a courier or operator ID number.
const MaxIDNumberLength = 30

// Courier delivers orders. A courier may report to an operator.
type Courier struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	IDNumber   string     `json:"id_number"`
	Available  bool       `json:"available"`
	OperatorID *uuid.UUID `json:"operator_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Operator dispatches orders and manages couriers.
type Operator struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IDNumber  string    `json:"id_number"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

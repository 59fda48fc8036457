package service

import (
	"github.com/google/uuid"
)

// QRCodeService generates and reads order tracking QR codes
type QRCodeService interface {
	// GenerateOrderQR returns a PNG QR code pointing to the order tracking page
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)

	// ParseOrderQR extracts the order ID from the content of a tracking QR code
	ParseOrderQR(qrData string) (uuid.UUID, error)
}

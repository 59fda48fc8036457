package qrcode

import (
	"net/url"
	"path"
	"strings"

	"burgerhub/config"
	"burgerhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	defaultBaseURL = "http://localhost:8080"
	trackingPath   = "/pedidos/"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// New builds the QR code service from the qrcode config section.
func New(cfg *config.Config) service.QRCodeService {
	if cfg == nil || cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M", defaultBaseURL)
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateOrderQR encodes the order tracking URL as a PNG QR code.
func (s *qrcodeService) GenerateOrderQR(orderID uuid.UUID) ([]byte, error) {
	if orderID == uuid.Nil {
		return nil, errors.New("order id is required")
	}

	content := s.baseURL + trackingPath + orderID.String()

	qrCode, err := qrcode.New(content, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseOrderQR extracts the order ID from a tracking URL.
func (s *qrcodeService) ParseOrderQR(qrData string) (uuid.UUID, error) {
	u, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code URL")
	}

	dir, last := path.Split(u.Path)
	if !strings.HasSuffix(dir, trackingPath) {
		return uuid.Nil, errors.Errorf("not an order tracking URL: %s", qrData)
	}

	orderID, err := uuid.Parse(last)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse order ID")
	}

	return orderID, nil
}

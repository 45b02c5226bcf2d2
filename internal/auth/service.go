package auth

import (
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
	"github.com/skip2/go-qrcode"
	"github.com/vincent-petithory/dataurl"
)

// QRImageSize is the PNG edge length in pixels
const QRImageSize = 256

// EncodeDataURL renders a pairing payload as a base64 PNG data URL
func EncodeDataURL(payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("received empty QR code")
	}

	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	png, err := qr.PNG(QRImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return dataurl.New(png, "image/png").String(), nil
}

// WithTerminal wraps an encoder so every successfully encoded payload is also drawn on out
func WithTerminal(encode func(string) (string, error), out io.Writer) func(string) (string, error) {
	return func(payload string) (string, error) {
		image, err := encode(payload)
		if err != nil {
			return "", err
		}
		qrterminal.GenerateHalfBlock(payload, qrterminal.L, out)
		return image, nil
	}
}

package media

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRPNG пишет QR с платёжной ссылкой в dir и возвращает имя файла.
func GenerateQRPNG(dir, id, paymentURI string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare media dir: %w", err)
	}

	filename := id + ".png"
	if err := qrcode.WriteFile(paymentURI, qrcode.Medium, 256, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("failed to generate qr code: %w", err)
	}

	return filename, nil
}

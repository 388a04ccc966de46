package workspace

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// QR 이미지 한 변의 픽셀 크기입니다. (Slack 이미지 블록 기준)
const qrImageSize = 512

// GenerateQRPNG는 체크인 링크를 QR 코드 PNG로 인코딩합니다.
func GenerateQRPNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("QR로 만들 내용이 없습니다.")
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("QR 인코딩 실패: %w", err)
	}

	scaled, err := barcode.Scale(code, qrImageSize, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("QR 스케일링 실패: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("QR PNG 인코딩 실패: %w", err)
	}
	return buf.Bytes(), nil
}

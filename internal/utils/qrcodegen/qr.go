package qrcodegen

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"qrqaema/internal/utils"
)

const imageSize = 512

// TableURL builds the customer-facing link encoded into a table's QR code.
func TableURL(restaurantID, tableID string) string {
	base := utils.GetConfig("FRONTEND_URL")
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return fmt.Sprintf("%srestaurant/%s/table/%s", base, restaurantID, tableID)
}

// ObjectKey is the storage location of a table's QR code image.
func ObjectKey(restaurantID, tableID string) string {
	return fmt.Sprintf("restaurants/%s/qrcodes/table_%s.png", restaurantID, tableID)
}

// Generate renders the QR code PNG for a table.
func Generate(restaurantID, tableID string) ([]byte, error) {
	return qrcode.Encode(TableURL(restaurantID, tableID), qrcode.Medium, imageSize)
}

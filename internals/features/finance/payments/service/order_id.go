package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderID builds "PAY-<madrasa short id>-<unix nano>-<4 random hex>".
// The madrasa prefix makes gateway dashboards scannable per tenant; the
// random suffix guards against two orders in the same nanosecond.
func NewOrderID(madrasaID uuid.UUID) string {
	short := strings.ReplaceAll(madrasaID.String(), "-", "")[:8]
	buf := make([]byte, 2)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("PAY-%s-%d-%s", strings.ToUpper(short), time.Now().UnixNano(), hex.EncodeToString(buf))
}

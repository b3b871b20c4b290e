package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// QRAttempt is one QR payment presentation: an opaque token combining a
// timestamp with a fresh UUID so two attempts in the same session can
// never collide.
type QRAttempt struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// NewQRAttempt mints a new per-attempt token.
func NewQRAttempt() QRAttempt {
	now := time.Now().UTC()
	return QRAttempt{
		Token:     fmt.Sprintf("compra-%d-%s", now.UnixMilli(), uuid.NewString()),
		CreatedAt: now,
	}
}

// PNG renders the attempt token as a QR image for the client to display.
func (a QRAttempt) PNG(size int) ([]byte, error) {
	return qrcode.Encode(a.Token, qrcode.Medium, size)
}

// CardDetails carries the four card-form fields. Presence of all four is
// required to confirm; formats are intentionally not validated here.
// That decision belongs to the Provider so a stricter (or real) one can
// be swapped in.
type CardDetails struct {
	Titular    string `json:"titular"`
	Numero     string `json:"numero"`
	Expiracion string `json:"expiracion"`
	CVV        string `json:"cvv"`
}

// Complete reports whether every field was supplied.
func (d CardDetails) Complete() bool {
	return d.Titular != "" && d.Numero != "" && d.Expiracion != "" && d.CVV != ""
}

// Provider authorizes a card payment for the given amount. No real
// settlement exists in this application; the simulated provider stands in
// until a gateway integration replaces it.
type Provider interface {
	Authorize(ctx context.Context, card CardDetails, amount float64) error
}

// SimulatedProvider approves every complete card form without contacting
// any gateway, mirroring the client-side confirmation this flow replaces.
type SimulatedProvider struct{}

func (SimulatedProvider) Authorize(ctx context.Context, card CardDetails, amount float64) error {
	return nil
}

var _ Provider = SimulatedProvider{}

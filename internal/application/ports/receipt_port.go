package ports

import (
	"context"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// ReceiptRenderer genera el comprobante de una orden (PDF).
type ReceiptRenderer interface {
	RenderOrderReceipt(ctx context.Context, order *entity.EnrichedOrder, customerEmail string) ([]byte, error)
}

package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// fallbackCatalog catálogo de demostración que se muestra cuando ni el espejo ni el
// almacén local tienen productos. No se persiste.
var fallbackCatalog = []entity.Product{
	{ID: "1", Name: "Oriflame Royal Velvet Lipstick",
		Description: "Long-lasting luxury lipstick with rich pigmentation and moisturizing formula.",
		Price:       decimal.RequireFromString("25.99"),
		Image:       "https://images.unsplash.com/photo-1586495777744-4413f21062fa?w=300&h=300&fit=crop"},
	{ID: "2", Name: "Divine Anti-Aging Cream",
		Description: "Premium anti-aging moisturizer with 24k gold and peptides for youthful skin.",
		Price:       decimal.RequireFromString("89.99"),
		Image:       "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?w=300&h=300&fit=crop"},
	{ID: "3", Name: "Eclat Beauty Serum",
		Description: "Illuminating vitamin C serum for radiant and glowing complexion.",
		Price:       decimal.RequireFromString("45.99"),
		Image:       "https://images.unsplash.com/photo-1571781926291-c477ebfd024b?w=300&h=300&fit=crop"},
	{ID: "4", Name: "Perfect Foundation",
		Description: "Full coverage foundation with SPF protection for flawless skin.",
		Price:       decimal.RequireFromString("35.99"),
		Image:       "https://images.unsplash.com/photo-1522335789203-aabd1fc54bc9?w=300&h=300&fit=crop"},
	{ID: "5", Name: "Oriflame Mascara Max",
		Description: "Volumizing mascara for dramatic lashes with waterproof formula.",
		Price:       decimal.RequireFromString("19.99"),
		Image:       "https://images.unsplash.com/photo-1631214540260-7234ca9821b7?w=300&h=300&fit=crop"},
	{ID: "6", Name: "Perfume - Swedish Spa",
		Description: "Fresh and invigorating fragrance inspired by Swedish nature.",
		Price:       decimal.RequireFromString("65.99"),
		Image:       "https://images.unsplash.com/photo-1588405748880-12d1d2a59d32?w=300&h=300&fit=crop"},
}

// FallbackCatalog copia del catálogo de demostración.
func FallbackCatalog() []*entity.Product {
	out := make([]*entity.Product, len(fallbackCatalog))
	for i := range fallbackCatalog {
		p := fallbackCatalog[i]
		out[i] = &p
	}
	return out
}

package localstore

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// Credenciales del administrador sembrado cuando la configuración no las define.
const (
	DefaultAdminEmail    = "admin@oriflame.com"
	DefaultAdminPassword = "admin123"
)

type sampleProduct struct {
	id, name, description, price, image string
}

// sampleProducts catálogo inicial que se inserta cuando la tabla de productos está vacía.
var sampleProducts = []sampleProduct{
	{"1", "Oriflame Royal Velvet Lipstick", "Long-lasting luxury lipstick with rich pigmentation and moisturizing formula.", "25.99",
		"https://images.unsplash.com/photo-1586495777744-4413f21062fa?w=300&h=300&fit=crop"},
	{"2", "Divine Anti-Aging Cream", "Premium anti-aging moisturizer with 24k gold and peptides for youthful skin.", "89.99",
		"https://images.unsplash.com/photo-1620916566398-39f1143ab7be?w=300&h=300&fit=crop"},
	{"3", "Eclat Beauty Serum", "Illuminating vitamin C serum for radiant and glowing complexion.", "45.99",
		"https://images.unsplash.com/photo-1571781926291-c477ebfd024b?w=300&h=300&fit=crop"},
	{"4", "Perfect Foundation", "Full coverage foundation with SPF protection for flawless skin.", "35.99",
		"https://images.unsplash.com/photo-1522335789203-aabd1fc54bc9?w=300&h=300&fit=crop"},
	{"5", "Wellness Multivitamin", "Complete daily multivitamin with essential nutrients for overall health.", "19.99",
		"https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=300&h=300&fit=crop"},
	{"6", "Hydrating Face Mask", "Intensive hydrating mask for dry and tired skin with natural ingredients.", "12.99",
		"https://images.unsplash.com/photo-1596755389378-c31d21fd1273?w=300&h=300&fit=crop"},
}

// SampleProductIDs ids del catálogo sembrado, en orden.
func SampleProductIDs() []string {
	ids := make([]string, len(sampleProducts))
	for i, p := range sampleProducts {
		ids[i] = p.id
	}
	return ids
}

func (s *Store) seedAdmin() error {
	email := s.cfg.AdminEmail
	if _, ok := s.users.Find(func(u *entity.User) bool { return u.Email == email }); ok {
		return nil
	}
	now := s.cfg.Now()
	admin := &entity.User{
		ID:        "admin_" + strconv.FormatInt(now.UnixMilli(), 10),
		Email:     email,
		Password:  s.cfg.AdminPassword,
		Role:      entity.RoleAdmin,
		CreatedAt: now,
	}
	if err := s.users.Put(admin); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("usuario administrador sembrado")
	return nil
}

func (s *Store) seedProducts() error {
	now := s.cfg.Now()
	for _, sp := range sampleProducts {
		p := &entity.Product{
			ID:          sp.id,
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.RequireFromString(sp.price),
			Image:       sp.image,
			CreatedAt:   now,
		}
		if err := s.products.Put(p); err != nil {
			return err
		}
	}
	s.log.Info().Int("count", len(sampleProducts)).Msg("productos de ejemplo sembrados")
	return nil
}

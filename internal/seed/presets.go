package seed

import (
	"context"
	"fmt"
	"log/slog"

	"classifieds/internal/middleware"
	"classifieds/internal/models"
	"classifieds/internal/repository"

	"gorm.io/gorm"
)

// Demo account created by Demo.
const (
	DemoEmail    = "teste@temvagaai.com"
	DemoPassword = "senha123"
	DemoName     = "Usuário Teste"
)

// Options controls what Run creates.
type Options struct {
	// FakeAds is the number of generated listings added after the demo data.
	FakeAds int
	// FakeUsers spreads the generated listings over this many extra accounts.
	FakeUsers int
	// Seed makes generated data reproducible when non-zero.
	Seed int64
}

// Result reports what Run created.
type Result struct {
	Skipped bool
	Users   int
	Ads     int
}

// Run seeds an empty database with the demo account, its example listings and
// optionally generated listings. A database that already has users is left
// untouched.
func Run(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	existing, err := repository.NewUserRepository(db).Count(ctx)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		middleware.Logger.Info("Database already has users, skipping seed", slog.Int64("users", existing))
		return &Result{Skipped: true}, nil
	}

	f := NewFactory(db, opts.Seed)
	res := &Result{}

	demo, err := f.CreateUser(ctx, DemoName, DemoEmail, DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}
	res.Users++

	for _, ad := range exampleAds(demo.ID) {
		if err := f.CreateAd(ctx, ad); err != nil {
			return nil, fmt.Errorf("create example ad: %w", err)
		}
		res.Ads++
	}

	if opts.FakeAds > 0 {
		owners := []*models.User{demo}
		for i := 0; i < opts.FakeUsers; i++ {
			u, err := f.CreateFakeUser(ctx, DemoPassword)
			if err != nil {
				return nil, fmt.Errorf("create fake user: %w", err)
			}
			owners = append(owners, u)
			res.Users++
		}
		for i := 0; i < opts.FakeAds; i++ {
			if err := f.CreateAd(ctx, f.BuildAd(owners[i%len(owners)])); err != nil {
				return nil, fmt.Errorf("create fake ad: %w", err)
			}
			res.Ads++
		}
	}

	middleware.Logger.Info("Seed completed",
		slog.Int("users", res.Users),
		slog.Int("ads", res.Ads))
	return res, nil
}

func exampleAds(ownerID uint) []*models.Ad {
	ptr := func(v float64) *float64 { return &v }
	num := func(v int) *int { return &v }
	str := func(v string) *string { return &v }

	return []*models.Ad{
		{
			UserID:      ownerID,
			Title:       "Apartamento 2 quartos no centro",
			Description: "Lindo apartamento de 2 quartos próximo ao shopping. Totalmente mobiliado com armários planejados.",
			Seller:      "João Silva",
			Location:    "Centro, São Paulo - SP",
			Cep:         str("01310-100"),
			Price:       ptr(2500),
			Category:    "Apartamento",
			Bedrooms:    num(2),
			Bathrooms:   num(1),
			Rules:       []string{"Não fumante", "Sem animais"},
			Amenities:   []string{"Wi-Fi", "Garagem", "Academia"},
			Images:      []string{"https://via.placeholder.com/800x600"},
			Status:      models.AdStatusPublished,
		},
		{
			UserID:      ownerID,
			Title:       "Casa espaçosa com quintal",
			Description: "Casa ampla com 3 quartos, 2 banheiros e quintal grande. Ótima localização próxima a escolas e mercados.",
			Seller:      "Maria Santos",
			Location:    "Jardim América, Belo Horizonte - MG",
			Cep:         str("30180-000"),
			Price:       ptr(3200),
			Category:    "Casa",
			Bedrooms:    num(3),
			Bathrooms:   num(2),
			Rules:       []string{"Aceita animais"},
			Amenities:   []string{"Quintal", "Churrasqueira", "Garagem para 2 carros"},
			Images:      []string{"https://via.placeholder.com/800x600"},
			Status:      models.AdStatusPublished,
		},
	}
}

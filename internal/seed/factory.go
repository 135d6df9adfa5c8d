// Package seed creates demo data for local development and tests.
package seed

import (
	"context"
	"fmt"
	"time"

	"classifieds/internal/models"
	"classifieds/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	users  repository.UserRepository
	ads    repository.AdRepository
	faker  *gofakeit.Faker
	cost   int
	hashes map[string]string
}

// NewFactory returns a Factory bound to db. A zero seed uses the current time.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{
		users:  repository.NewUserRepository(db),
		ads:    repository.NewAdRepository(db),
		faker:  gofakeit.New(seed),
		cost:   bcrypt.DefaultCost,
		hashes: map[string]string{},
	}
}

// CreateUser persists a user with the given credentials.
func (f *Factory) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, ok := f.hashes[password]
	if !ok {
		b, err := bcrypt.GenerateFromPassword([]byte(password), f.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(b)
		f.hashes[password] = hash
	}

	user := &models.User{Email: email, Password: hash}
	if name != "" {
		user.Name = &name
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFakeUser persists a user with a generated name and email.
func (f *Factory) CreateFakeUser(ctx context.Context, password string) (*models.User, error) {
	name := f.faker.Name()
	email := fmt.Sprintf("%s.%d@example.com", f.faker.Username(), f.faker.Number(1000, 9999))
	return f.CreateUser(ctx, name, email, password)
}

// BuildAd returns an unsaved listing for owner filled with generated values.
func (f *Factory) BuildAd(owner *models.User) *models.Ad {
	category := models.Categories[f.faker.Number(0, len(models.Categories)-1)]

	price := float64(f.faker.Number(40, 900)) * 10
	bedrooms := f.faker.Number(0, 4)
	bathrooms := f.faker.Number(1, 3)
	cep := fmt.Sprintf("%05d-%03d", f.faker.Number(1000, 99999), f.faker.Number(0, 999))

	status := models.AdStatusPublished
	if f.faker.Number(1, 10) == 1 {
		status = models.AdStatusDraft
	}

	sellerName := f.faker.Name()
	if owner.Name != nil {
		sellerName = *owner.Name
	}

	images := make([]string, f.faker.Number(1, 4))
	for i := range images {
		images[i] = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID())
	}

	return &models.Ad{
		UserID:      owner.ID,
		Title:       fmt.Sprintf("%s %s", category.Name, f.faker.Adjective()),
		Description: f.faker.Paragraph(1, 3, 12, " "),
		Seller:      sellerName,
		Location:    fmt.Sprintf("%s, %s", f.faker.City(), f.faker.StateAbr()),
		Cep:         &cep,
		Price:       &price,
		Category:    category.Name,
		Bedrooms:    &bedrooms,
		Bathrooms:   &bathrooms,
		Rules:       f.pick(houseRules, 0, 2),
		Amenities:   f.pick(amenities, 1, 4),
		Images:      images,
		Status:      status,
	}
}

// CreateAd persists ad.
func (f *Factory) CreateAd(ctx context.Context, ad *models.Ad) error {
	return f.ads.Create(ctx, ad)
}

func (f *Factory) pick(from []string, minN, maxN int) []string {
	n := f.faker.Number(minN, maxN)
	out := make([]string, 0, n)
	for _, i := range f.faker.Rand.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}

var houseRules = []string{"Não fumante", "Sem animais", "Aceita animais", "Sem festas", "Silêncio após 22h"}

var amenities = []string{"Wi-Fi", "Garagem", "Academia", "Piscina", "Churrasqueira", "Lavanderia", "Portaria 24h"}

package models

import "time"

// Favorite bookmarks an ad for a user. The pair is the primary key.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	AdID      uint      `gorm:"primaryKey;autoIncrement:false;index" json:"ad_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Ad   Ad   `gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE" json:"-"`
}

// Category is a suggested listing category.
type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Categories is the fixed catalogue offered to clients. Ad.Category stays free text.
var Categories = []Category{
	{Name: "Apartamento", Slug: "apartamento", Description: "Apartamentos para alugar"},
	{Name: "Casa", Slug: "casa", Description: "Casas para alugar"},
	{Name: "Kitnet", Slug: "kitnet", Description: "Kitnets e quitinetes"},
	{Name: "Quarto", Slug: "quarto", Description: "Quartos para alugar"},
	{Name: "Residencial", Slug: "residencial", Description: "Outros imóveis residenciais"},
}

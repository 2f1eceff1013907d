package model

import "github.com/shopspring/decimal"

type Category struct {
	DTO
	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	Games []Game `gorm:"many2many:game_categories;" json:"-"`
}

type Tag struct {
	DTO
	Name string `gorm:"size:50;not null" json:"name"`

	Games []Game `gorm:"many2many:game_tags;" json:"-"`
}

type Developer struct {
	DTO
	Name        string  `gorm:"size:100;unique;not null" json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	LogoUrl     *string `json:"logoUrl"`
}

type Game struct {
	DTO
	Title       string          `gorm:"size:200;not null" json:"title"`
	Slug        string          `gorm:"unique;size:220" json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	ImageUrl *string `json:"imageUrl"` // Ảnh bìa (Cloudinary)
	FileUrl  *string `json:"-"`        // File game, chỉ trả về khi đã mua

	ViewCount     uint `gorm:"default:0" json:"viewCount"`
	PurchaseCount uint `gorm:"default:0" json:"purchaseCount"`

	DeveloperId *uint      `json:"developerId"`
	Developer   *Developer `gorm:"foreignKey:DeveloperId" json:"developer,omitempty"`

	Categories []Category `gorm:"many2many:game_categories;" json:"categories"`
	Tags       []Tag      `gorm:"many2many:game_tags;" json:"tags"`

	Active bool `gorm:"default:true" json:"active"`
}

type CreateGameInput struct {
	Title       string   `validate:"required,max=200" json:"title"`
	Description string   `json:"description"`
	Price       string   `validate:"required" json:"price"`
	DeveloperId *uint    `json:"developerId"`
	CategoryIds []uint   `json:"categoryIds"`
	TagNames    []string `json:"tagNames"`
}

type EditGameInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	DeveloperId *uint    `json:"developerId"`
	CategoryIds []uint   `json:"categoryIds"`
	TagNames    []string `json:"tagNames"`
	Active      *bool    `json:"active"`
}

type FilterGame struct {
	Pagination
	SearchKey  string `json:"searchKey"`
	CategoryId *uint  `json:"categoryId"`
	TagId      *uint  `json:"tagId"`
	PriceMin   *string `json:"priceMin"`
	PriceMax   *string `json:"priceMax"`
}

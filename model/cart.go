package model

type Cart struct {
	DTO
	CustomerId uint       `gorm:"not null;uniqueIndex" json:"customerId"`
	Customer   Customer   `gorm:"foreignKey:CustomerId" json:"-"`
	Items      []CartItem `gorm:"foreignKey:CartId" json:"items"`
}

type CartItem struct {
	DTO
	CartId uint `gorm:"not null;index" json:"cartId"`
	GameId uint `gorm:"not null" json:"gameId"`
	Game   Game `gorm:"foreignKey:GameId" json:"game"`
}

type AddCartItemInput struct {
	GameId uint `validate:"required,gt=0" json:"gameId"`
}

package model

type Review struct {
	DTO
	CustomerId uint     `gorm:"not null" json:"customerId"`
	Customer   Customer `gorm:"foreignKey:CustomerId" json:"customer"`
	GameId     uint     `gorm:"not null;index" json:"gameId"`
	Game       Game     `gorm:"foreignKey:GameId" json:"-"`
	Rating     int      `gorm:"not null" json:"rating"` // 1..5
	Comment    string   `json:"comment"`
	ImageUrl   *string  `json:"imageUrl"`
}

type CreateReviewInput struct {
	GameId  uint   `validate:"required,gt=0" json:"gameId"`
	Rating  int    `validate:"required,min=1,max=5" json:"rating"`
	Comment string `validate:"required" json:"comment"`
}

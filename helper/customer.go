package helper

import (
	"errors"

	"game_store/database"
	"game_store/model"

	"gorm.io/gorm"
)

func CheckByEmailCustomer(email string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	query := db.Model(&model.Customer{}).Where("email = ?", email)
	if id != nil {
		query = query.Where("id != ?", *id)
	}
	if err := query.Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

func CheckByPhoneCustomer(phone string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	query := db.Model(&model.Customer{}).Where("phone = ?", phone)
	if id != nil {
		query = query.Where("id != ?", *id)
	}
	if err := query.Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

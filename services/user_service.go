package services

import (
	"errors"
	"fmt"
	"time"

	"fitcoach/config"
	"fitcoach/models"
	"fitcoach/utils"
)

type ProfileInput struct {
	FullName       string  `json:"full_name"`
	Birthday       string  `json:"birthday"` // "YYYY-MM-DD"
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	FitnessGoals   string  `json:"fitness_goals"`
	ProfilePicture string  `json:"profile_picture"` // base64 data URL
	Onboarded      bool    `json:"onboarded"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return nil, errors.New("user not found or disabled")
	}

	birthday := ""
	if !user.Birthday.IsZero() {
		birthday = user.Birthday.Format("2006-01-02")
	}

	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"birthday":        birthday,
		"height":          user.Height,
		"weight":          user.Weight,
		"fitness_goals":   user.FitnessGoals,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"onboarded":       user.Onboarded,
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
		}
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.FitnessGoals != "" {
		user.FitnessGoals = input.FitnessGoals
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}
	user.Onboarded = input.Onboarded

	return config.DB.Save(&user).Error
}

func DisableUser(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}

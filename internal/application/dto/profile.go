package dto

import "pillulu/internal/domain/entity"

// ProfileResponse is the current user's health profile.
type ProfileResponse struct {
	Age      *int    `json:"age"`
	HeightCm *int    `json:"height_cm"`
	WeightKg *int    `json:"weight_kg"`
	Region   *string `json:"region"`
}

// ProfileUpdateRequest updates only the fields that are present.
type ProfileUpdateRequest struct {
	Age      *int    `json:"age"`
	HeightCm *int    `json:"height_cm"`
	WeightKg *int    `json:"weight_kg"`
	Region   *string `json:"region"`
}

// ToProfileResponse converts an entity.User to a ProfileResponse DTO.
func ToProfileResponse(u *entity.User) ProfileResponse {
	return ProfileResponse{
		Age:      u.Age,
		HeightCm: u.HeightCm,
		WeightKg: u.WeightKg,
		Region:   u.Region,
	}
}

// EmailResponse carries the address reminder emails go to.
type EmailResponse struct {
	Email string `json:"email"`
}

// EmailUpdateRequest is the DTO for changing the reminder email.
type EmailUpdateRequest struct {
	Email string `json:"email"`
}

// LineLinkCodeResponse carries the one-time code a user sends to the LINE bot.
type LineLinkCodeResponse struct {
	Code         string `json:"code"`
	Instructions string `json:"instructions"`
	Linked       bool   `json:"linked"`
}

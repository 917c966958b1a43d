package dto

type UpdateProfileRequest struct {
	AboutMe *string `json:"about_me" binding:"omitempty,max=140"`
}

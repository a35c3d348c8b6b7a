package dto

import (
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/domain/user"
)

// UserResponse is the public view of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AvatarURL   string `json:"avatarUrl"`
	Language    string `json:"language"`
	MoviesSeen  []int  `json:"moviesSeen"`
	MoviesToSee []int  `json:"moviesToSee"`
	Favorites   []int  `json:"favorites"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		AvatarURL:   u.AvatarURL,
		Language:    u.Language,
		MoviesSeen:  u.MoviesSeen,
		MoviesToSee: u.MoviesToSee,
		Favorites:   u.Favorites,
	}
}

// UpdateUserRequest carries partial updates to a user profile. Absent
// fields are left untouched.
type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty" binding:"omitempty,min=3,max=64"`
	Password    *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	Language    *string `json:"language,omitempty"`
	MoviesSeen  *[]int  `json:"moviesSeen,omitempty"`
	MoviesToSee *[]int  `json:"moviesToSee,omitempty"`
	Favorites   *[]int  `json:"favorites,omitempty"`
}

package dto

import "tracker/internal/domain/user"

// UserDTO is the public view of a user; the password hash never leaves the domain.
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:       u.ID(),
		Username: u.Username(),
		FullName: u.FullName(),
		Email:    u.Email(),
		Role:     u.Role().String(),
	}
}

func ToUserDTOs(users []*user.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	User        UserDTO `json:"user"`
}

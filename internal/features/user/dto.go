package user

// Requests

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	City          string            `json:"city"`
	Country       string            `json:"country"`
	StreetAddress string            `json:"streetAddress"`
	Postcode      string            `json:"postcode"`
	Measurements  map[string]string `json:"measurements"`
}

// Responses

type LoginUserResponse struct {
	AccessToken string `json:"accessToken"`
	EntityType  string `json:"entityType"`
	User        *User  `json:"user"`
}

package dto

type LoginRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

func (r LoginRequest) Validate() error {
	return GetValidator().Struct(r)
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type LoginResponse struct {
	TokenPair
	Role string `json:"role"`
}

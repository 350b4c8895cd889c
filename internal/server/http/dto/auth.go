package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	ShopName    string `json:"shop_name"`
	ShopAddress string `json:"shop_address"`
	ShopContact string `json:"shop_contact"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	ShopName    string `json:"shop_name,omitempty"`
	ShopAddress string `json:"shop_address,omitempty"`
	ShopContact string `json:"shop_contact,omitempty"`
}

// AuthResponse returns a signed token with the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

package api

// Request DTOs

type ChallengeResponse struct {
	Nonce string `json:"nonce"`
}

type LoginRequest struct {
	Pubkey    string `json:"pubkey" validate:"required,len=64,hexadecimal"`
	Nonce     string `json:"nonce" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"` // for non-cookie clients
}

type LogoutResponse struct {
	Message string `json:"message"`
}

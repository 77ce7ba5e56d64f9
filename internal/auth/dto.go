package auth

// TokenResponse carries the issued bearer token. The jwt key is the contract
// clients read.
type TokenResponse struct {
	JWT string `json:"jwt"`
}

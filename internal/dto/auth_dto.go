package dto

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	RecoveryPin string `json:"recovery_pin"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangeUsernameRequest struct {
	NewUsername string `json:"newUsername"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type CheckRecoveryRequest struct {
	Email string `json:"email"`
}

type CheckRecoveryResponse struct {
	Exists bool `json:"exists"`
	HasPin bool `json:"hasPin"`
}

type ResetPasswordPinRequest struct {
	Email       string `json:"email"`
	Pin         string `json:"pin"`
	NewPassword string `json:"newPassword"`
}

type SetupPinRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"currentPin"`
	NewPin     string `json:"newPin"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body for every failed request. Code is set
// on auth failures so clients can tell an expired token from a corrupt one.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

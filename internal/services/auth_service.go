package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/MalenaSein/anime-tracker/internal/config"
	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrIdentityTaken      = errors.New("usuario o email ya existe")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("ese nombre de usuario ya está en uso")
	ErrInvalidPin         = errors.New("PIN incorrecto")
	ErrNoPinConfigured    = errors.New("esta cuenta no tiene un PIN de recuperación configurado")
	ErrPinAlreadySet      = errors.New("esta cuenta ya tiene un PIN configurado")
	ErrIdentityMismatch   = errors.New("los datos no coinciden con ninguna cuenta")
)

var pinFormat = regexp.MustCompile(`^\d{4}$`)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Username == "" || req.Email == "" {
		return nil, errors.New("usuario y email son obligatorios")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("la contraseña debe tener al menos 6 caracteres")
	}
	if !pinFormat.MatchString(req.RecoveryPin) {
		return nil, errors.New("el PIN debe ser exactamente 4 dígitos")
	}

	var existing models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		return nil, ErrIdentityTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.RecoveryPin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash recovery pin: %w", err)
	}

	pin := string(pinHash)
	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(passwordHash),
		RecoveryPin: &pin,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse("Usuario registrado exitosamente", &user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse("Login exitoso", &user)
}

// ChangeUsername renames the account and issues a fresh token, since the
// username is embedded in the claims.
func (s *AuthService) ChangeUsername(userID uint, newUsername string) (*dto.AuthResponse, error) {
	if len(newUsername) < 3 {
		return nil, errors.New("el nombre de usuario debe tener al menos 3 caracteres")
	}

	var taken models.User
	if err := s.db.Where("username = ? AND id <> ?", newUsername, userID).First(&taken).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.db.Model(&user).Update("username", newUsername).Error; err != nil {
		return nil, fmt.Errorf("failed to update username: %w", err)
	}
	user.Username = newUsername

	return s.authResponse("Nombre de usuario actualizado", &user)
}

// DeleteAccount verifies the password and removes the user together with
// every owned anime, schedule and push subscription.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Anime{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PushSubscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// CheckRecovery reports whether an account exists for the email and
// whether it has a recovery PIN configured. It never reveals more.
func (s *AuthService) CheckRecovery(email string) (exists bool, hasPin bool) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return false, false
	}
	return true, user.RecoveryPin != nil
}

func (s *AuthService) ResetPasswordWithPin(req *dto.ResetPasswordPinRequest) error {
	if len(req.NewPassword) < 6 {
		return errors.New("la contraseña debe tener al menos 6 caracteres")
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}
	if user.RecoveryPin == nil {
		return ErrNoPinConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.RecoveryPin), []byte(req.Pin)); err != nil {
		return ErrInvalidPin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}

// SetupPin lets a legacy account without a PIN create one, after proving
// it knows both the username and the email of the account.
func (s *AuthService) SetupPin(req *dto.SetupPinRequest) error {
	if !pinFormat.MatchString(req.Pin) {
		return errors.New("el PIN debe ser exactamente 4 dígitos")
	}

	var user models.User
	if err := s.db.Where("email = ? AND username = ?", req.Email, req.Username).First(&user).Error; err != nil {
		return ErrIdentityMismatch
	}
	if user.RecoveryPin != nil {
		return ErrPinAlreadySet
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash recovery pin: %w", err)
	}

	return s.db.Model(&user).Update("recovery_pin", string(hash)).Error
}

func (s *AuthService) ChangePin(userID uint, req *dto.ChangePinRequest) error {
	if !pinFormat.MatchString(req.NewPin) {
		return errors.New("el PIN debe ser exactamente 4 dígitos")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}
	if user.RecoveryPin == nil {
		return ErrNoPinConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.RecoveryPin), []byte(req.CurrentPin)); err != nil {
		return ErrInvalidPin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash recovery pin: %w", err)
	}

	return s.db.Model(&user).Update("recovery_pin", string(hash)).Error
}

func (s *AuthService) authResponse(message string, user *models.User) (*dto.AuthResponse, error) {
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message: message,
		Token:   token,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

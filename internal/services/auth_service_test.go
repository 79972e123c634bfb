package services

import (
	"errors"
	"testing"

	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestRegister(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())

	t.Run("valid registration returns token", func(t *testing.T) {
		resp, err := svc.Register(&dto.RegisterRequest{
			Username:    "malena",
			Email:       "malena@example.com",
			Password:    "secret123",
			RecoveryPin: "1234",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if resp.Token == "" {
			t.Error("Token empty")
		}
		if resp.User.Username != "malena" || resp.User.ID == 0 {
			t.Errorf("User = %+v, want populated", resp.User)
		}

		token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("token invalid: %v", err)
		}
		claims := token.Claims.(jwt.MapClaims)
		if claims["username"] != "malena" {
			t.Errorf("username claim = %v", claims["username"])
		}

		// Password and PIN are stored hashed, never in the clear.
		var stored models.User
		db.First(&stored, "email = ?", "malena@example.com")
		if stored.Password == "secret123" {
			t.Error("password stored in the clear")
		}
		if stored.RecoveryPin == nil || *stored.RecoveryPin == "1234" {
			t.Error("recovery pin missing or stored in the clear")
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Username: "otra", Email: "malena@example.com", Password: "secret123", RecoveryPin: "1234",
		})
		if !errors.Is(err, ErrIdentityTaken) {
			t.Fatalf("err = %v, want ErrIdentityTaken", err)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Username: "malena", Email: "otra@example.com", Password: "secret123", RecoveryPin: "1234",
		})
		if !errors.Is(err, ErrIdentityTaken) {
			t.Fatalf("err = %v, want ErrIdentityTaken", err)
		}
	})

	t.Run("weak inputs rejected", func(t *testing.T) {
		cases := []dto.RegisterRequest{
			{Username: "x", Email: "x@example.com", Password: "short", RecoveryPin: "1234"},
			{Username: "x", Email: "x@example.com", Password: "secret123", RecoveryPin: "12"},
			{Username: "x", Email: "x@example.com", Password: "secret123", RecoveryPin: "abcd"},
			{Username: "", Email: "x@example.com", Password: "secret123", RecoveryPin: "1234"},
		}
		for _, c := range cases {
			if _, err := svc.Register(&c); err == nil {
				t.Errorf("Register(%+v) succeeded, want error", c)
			}
		}
	})
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "malena", "malena@example.com", "secret123", "1234")
	svc := NewAuthService(db, testConfig())

	t.Run("correct credentials", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "malena@example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.Token == "" {
			t.Error("Token empty")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Login(&dto.LoginRequest{Email: "malena@example.com", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.Login(&dto.LoginRequest{Email: "nadie@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestChangeUsername(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "malena", "malena@example.com", "secret123", "1234")
	seedUser(t, db, "taken", "taken@example.com", "secret123", "1234")
	svc := NewAuthService(db, testConfig())

	t.Run("rename issues fresh token", func(t *testing.T) {
		resp, err := svc.ChangeUsername(user.ID, "malena_sein")
		if err != nil {
			t.Fatalf("ChangeUsername: %v", err)
		}
		if resp.User.Username != "malena_sein" {
			t.Errorf("Username = %q", resp.User.Username)
		}
		if resp.Token == "" {
			t.Error("Token empty, want re-issued token with new username claim")
		}
	})

	t.Run("taken name rejected", func(t *testing.T) {
		if _, err := svc.ChangeUsername(user.ID, "taken"); !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("err = %v, want ErrUsernameTaken", err)
		}
	})

	t.Run("too short rejected", func(t *testing.T) {
		if _, err := svc.ChangeUsername(user.ID, "ab"); err == nil {
			t.Fatal("expected error for short username")
		}
	})
}

func TestPinRecoveryFlow(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "malena", "malena@example.com", "secret123", "1234")
	legacy := seedUser(t, db, "legacy", "legacy@example.com", "secret123", "")
	svc := NewAuthService(db, testConfig())

	t.Run("check recovery", func(t *testing.T) {
		exists, hasPin := svc.CheckRecovery("malena@example.com")
		if !exists || !hasPin {
			t.Errorf("CheckRecovery = (%v, %v), want (true, true)", exists, hasPin)
		}
		exists, hasPin = svc.CheckRecovery("legacy@example.com")
		if !exists || hasPin {
			t.Errorf("CheckRecovery = (%v, %v), want (true, false)", exists, hasPin)
		}
		exists, _ = svc.CheckRecovery("nadie@example.com")
		if exists {
			t.Error("CheckRecovery reported an account that does not exist")
		}
	})

	t.Run("reset with correct pin", func(t *testing.T) {
		err := svc.ResetPasswordWithPin(&dto.ResetPasswordPinRequest{
			Email: "malena@example.com", Pin: "1234", NewPassword: "nueva456",
		})
		if err != nil {
			t.Fatalf("ResetPasswordWithPin: %v", err)
		}
		if _, err := svc.Login(&dto.LoginRequest{Email: "malena@example.com", Password: "nueva456"}); err != nil {
			t.Fatalf("login with new password: %v", err)
		}
		if _, err := svc.Login(&dto.LoginRequest{Email: "malena@example.com", Password: "secret123"}); err == nil {
			t.Fatal("old password still accepted")
		}
	})

	t.Run("reset with wrong pin", func(t *testing.T) {
		err := svc.ResetPasswordWithPin(&dto.ResetPasswordPinRequest{
			Email: "malena@example.com", Pin: "0000", NewPassword: "nueva456",
		})
		if !errors.Is(err, ErrInvalidPin) {
			t.Fatalf("err = %v, want ErrInvalidPin", err)
		}
	})

	t.Run("reset without configured pin", func(t *testing.T) {
		err := svc.ResetPasswordWithPin(&dto.ResetPasswordPinRequest{
			Email: "legacy@example.com", Pin: "1234", NewPassword: "nueva456",
		})
		if !errors.Is(err, ErrNoPinConfigured) {
			t.Fatalf("err = %v, want ErrNoPinConfigured", err)
		}
	})

	t.Run("legacy account sets up pin", func(t *testing.T) {
		err := svc.SetupPin(&dto.SetupPinRequest{Email: "legacy@example.com", Username: "legacy", Pin: "5678"})
		if err != nil {
			t.Fatalf("SetupPin: %v", err)
		}
		if err := svc.SetupPin(&dto.SetupPinRequest{Email: "legacy@example.com", Username: "legacy", Pin: "5678"}); !errors.Is(err, ErrPinAlreadySet) {
			t.Fatalf("second SetupPin err = %v, want ErrPinAlreadySet", err)
		}
	})

	t.Run("setup pin requires matching identity", func(t *testing.T) {
		err := svc.SetupPin(&dto.SetupPinRequest{Email: "legacy@example.com", Username: "impostor", Pin: "5678"})
		if !errors.Is(err, ErrIdentityMismatch) {
			t.Fatalf("err = %v, want ErrIdentityMismatch", err)
		}
	})

	t.Run("change pin", func(t *testing.T) {
		if err := svc.ChangePin(legacy.ID, &dto.ChangePinRequest{CurrentPin: "5678", NewPin: "4321"}); err != nil {
			t.Fatalf("ChangePin: %v", err)
		}
		if err := svc.ChangePin(legacy.ID, &dto.ChangePinRequest{CurrentPin: "5678", NewPin: "9999"}); !errors.Is(err, ErrInvalidPin) {
			t.Fatalf("err = %v, want ErrInvalidPin", err)
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "malena", "malena@example.com", "secret123", "1234")
	survivor := seedUser(t, db, "otra", "otra@example.com", "secret123", "1234")
	svc := NewAuthService(db, testConfig())

	anime := seedAnime(t, db, user.ID, "One Piece")
	db.Create(&models.Schedule{UserID: user.ID, AnimeID: anime.ID, Day: 0, Hour: 20, Minute: 30, NotificationEnabled: true})
	db.Create(&models.PushSubscription{UserID: user.ID, Endpoint: "https://push.example.com/a", P256dh: "k", Auth: "a"})
	survivorAnime := seedAnime(t, db, survivor.ID, "Gintama")

	t.Run("wrong password rejected", func(t *testing.T) {
		if err := svc.DeleteAccount(user.ID, "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("cascade removes owned rows", func(t *testing.T) {
		if err := svc.DeleteAccount(user.ID, "secret123"); err != nil {
			t.Fatalf("DeleteAccount: %v", err)
		}

		for name, model := range map[string]interface{}{
			"users":              &models.User{},
			"animes":             &models.Anime{},
			"schedules":          &models.Schedule{},
			"push_subscriptions": &models.PushSubscription{},
		} {
			var count int64
			col := "user_id"
			if name == "users" {
				col = "id"
			}
			db.Model(model).Where(col+" = ?", user.ID).Count(&count)
			if count != 0 {
				t.Errorf("%s rows remaining = %d, want 0", name, count)
			}
		}

		// The other account is untouched.
		var count int64
		db.Model(&models.Anime{}).Where("id = ?", survivorAnime.ID).Count(&count)
		if count != 1 {
			t.Error("unrelated user's anime was deleted")
		}
	})
}

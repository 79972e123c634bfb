package services

import (
	"context"
	"errors"
	"testing"

	"github.com/MalenaSein/anime-tracker/internal/dto"
	"github.com/MalenaSein/anime-tracker/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAnimeCreate(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "malena", "malena@example.com", "secret123", "1234")
	svc := NewAnimeService(db, staticCovers{url: "https://cdn.example.com/op.jpg"})

	t.Run("defaults applied", func(t *testing.T) {
		anime, err := svc.Create(context.Background(), user.ID, &dto.CreateAnimeRequest{Nombre: "One Piece"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if anime.Estado != "viendo" {
			t.Errorf("Estado = %q, want viendo", anime.Estado)
		}
		if anime.Tipo != "Desconocido" {
			t.Errorf("Tipo = %q, want Desconocido", anime.Tipo)
		}
		if anime.ImagenURL != "https://cdn.example.com/op.jpg" {
			t.Errorf("ImagenURL = %q, want resolved cover", anime.ImagenURL)
		}
		if anime.CapitulosVistos != 0 {
			t.Errorf("CapitulosVistos = %d, want 0", anime.CapitulosVistos)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		if _, err := svc.Create(context.Background(), user.ID, &dto.CreateAnimeRequest{}); err == nil {
			t.Fatal("expected error for empty name")
		}
	})

	t.Run("negative episodes rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), user.ID, &dto.CreateAnimeRequest{Nombre: "X", CapitulosVistos: -1})
		if !errors.Is(err, ErrInvalidCapitulos) {
			t.Fatalf("err = %v, want ErrInvalidCapitulos", err)
		}
	})
}

func TestAnimeUpdate(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "malena", "malena@example.com", "secret123", "1234")
	other := seedUser(t, db, "intruso", "intruso@example.com", "secret123", "1234")
	svc := NewAnimeService(db, staticCovers{})

	anime := seedAnime(t, db, user.ID, "Frieren")

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.Update(anime.ID, user.ID, &dto.UpdateAnimeRequest{
			CapitulosVistos: intPtr(12),
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.CapitulosVistos != 12 {
			t.Errorf("CapitulosVistos = %d, want 12", updated.CapitulosVistos)
		}
		if updated.Nombre != "Frieren" {
			t.Errorf("Nombre = %q, want unchanged", updated.Nombre)
		}
		if updated.Estado != "viendo" {
			t.Errorf("Estado = %q, want unchanged", updated.Estado)
		}
	})

	t.Run("estado and rating validated", func(t *testing.T) {
		if _, err := svc.Update(anime.ID, user.ID, &dto.UpdateAnimeRequest{Estado: strPtr("terminadisimo")}); !errors.Is(err, ErrInvalidEstado) {
			t.Errorf("err = %v, want ErrInvalidEstado", err)
		}
		if _, err := svc.Update(anime.ID, user.ID, &dto.UpdateAnimeRequest{Calificacion: intPtr(6)}); !errors.Is(err, ErrInvalidCalificacion) {
			t.Errorf("err = %v, want ErrInvalidCalificacion", err)
		}
		if _, err := svc.Update(anime.ID, user.ID, &dto.UpdateAnimeRequest{Calificacion: intPtr(0)}); !errors.Is(err, ErrInvalidCalificacion) {
			t.Errorf("err = %v, want ErrInvalidCalificacion", err)
		}

		updated, err := svc.Update(anime.ID, user.ID, &dto.UpdateAnimeRequest{
			Estado:       strPtr("completado"),
			Calificacion: intPtr(5),
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Estado != "completado" || updated.Calificacion == nil || *updated.Calificacion != 5 {
			t.Errorf("got estado=%q calificacion=%v, want completado/5", updated.Estado, updated.Calificacion)
		}
	})

	t.Run("other user's anime invisible", func(t *testing.T) {
		if _, err := svc.Update(anime.ID, other.ID, &dto.UpdateAnimeRequest{CapitulosVistos: intPtr(1)}); !errors.Is(err, ErrAnimeNotFound) {
			t.Errorf("err = %v, want ErrAnimeNotFound", err)
		}
	})
}

func TestAnimeDelete(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "malena", "malena@example.com", "secret123", "1234")
	svc := NewAnimeService(db, staticCovers{})

	anime := seedAnime(t, db, user.ID, "Naruto")
	day, hour := 0, 20
	schedule := models.Schedule{UserID: user.ID, AnimeID: anime.ID, Day: day, Hour: hour, Minute: 30, NotificationEnabled: true}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	if err := svc.Delete(anime.ID, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var schedules int64
	db.Model(&models.Schedule{}).Where("anime_id = ?", anime.ID).Count(&schedules)
	if schedules != 0 {
		t.Errorf("schedules remaining = %d, want 0 after anime delete", schedules)
	}

	if err := svc.Delete(anime.ID, user.ID); !errors.Is(err, ErrAnimeNotFound) {
		t.Errorf("second delete err = %v, want ErrAnimeNotFound", err)
	}
}

func TestAnimeListScopedToUser(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret123", "1234")
	bob := seedUser(t, db, "bob", "bob@example.com", "secret123", "1234")
	svc := NewAnimeService(db, staticCovers{})

	seedAnime(t, db, alice.ID, "Bleach")
	seedAnime(t, db, alice.ID, "Monster")
	seedAnime(t, db, bob.ID, "Gintama")

	animes, err := svc.List(alice.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(animes) != 2 {
		t.Fatalf("len = %d, want 2", len(animes))
	}
	for _, a := range animes {
		if a.UserID != alice.ID {
			t.Errorf("anime %q belongs to user %d", a.Nombre, a.UserID)
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	jikanSearchURL   = "https://api.jikan.moe/v4/anime?q=%s&limit=1"
	placeholderURL   = "https://via.placeholder.com/225x350/9333ea/ffffff?text=Anime"
	coverCachePrefix = "anime_cover:"
	coverCacheTTL    = 24 * time.Hour
)

// ImageService resolves cover images through the Jikan (MyAnimeList)
// search API. Results are cached in Redis when a client is available;
// lookups degrade to a placeholder and never fail the caller.
type ImageService struct {
	client    *http.Client
	cache     *redis.Client // nil disables caching
	searchURL string
}

func NewImageService(cache *redis.Client) *ImageService {
	return &ImageService{
		client:    &http.Client{Timeout: 10 * time.Second},
		cache:     cache,
		searchURL: jikanSearchURL,
	}
}

// CoverFor returns a cover image URL for the title, or the placeholder.
func (s *ImageService) CoverFor(ctx context.Context, nombre string) string {
	cacheKey := coverCachePrefix + strings.ToLower(nombre)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached
		}
	}

	imageURL, err := s.lookup(ctx, nombre)
	if err != nil {
		slog.Warn("cover image lookup failed", "nombre", nombre, "error", err)
		return placeholderURL
	}
	if imageURL == "" {
		return placeholderURL
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, imageURL, coverCacheTTL).Err(); err != nil {
			slog.Warn("cover image cache write failed", "error", err)
		}
	}

	return imageURL
}

func (s *ImageService) lookup(ctx context.Context, nombre string) (string, error) {
	searchURL := fmt.Sprintf(s.searchURL, url.QueryEscape(nombre))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("jikan search returned %d", resp.StatusCode)
	}

	var body struct {
		Data []struct {
			Images struct {
				JPG struct {
					ImageURL      string `json:"image_url"`
					LargeImageURL string `json:"large_image_url"`
				} `json:"jpg"`
			} `json:"images"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	if len(body.Data) == 0 {
		return "", nil
	}
	if large := body.Data[0].Images.JPG.LargeImageURL; large != "" {
		return large, nil
	}
	return body.Data[0].Images.JPG.ImageURL, nil
}

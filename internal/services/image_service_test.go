package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func jikanStub(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func stubbedImageService(srv *httptest.Server) *ImageService {
	svc := NewImageService(nil)
	svc.searchURL = srv.URL + "/v4/anime?q=%s&limit=1"
	return svc
}

func TestCoverFor(t *testing.T) {
	t.Run("prefers large image", func(t *testing.T) {
		srv := jikanStub(t, `{"data":[{"images":{"jpg":{"image_url":"https://cdn.example.com/small.jpg","large_image_url":"https://cdn.example.com/large.jpg"}}}]}`, http.StatusOK)
		svc := stubbedImageService(srv)

		if got := svc.CoverFor(context.Background(), "One Piece"); got != "https://cdn.example.com/large.jpg" {
			t.Errorf("CoverFor = %q, want large image", got)
		}
	})

	t.Run("falls back to small image", func(t *testing.T) {
		srv := jikanStub(t, `{"data":[{"images":{"jpg":{"image_url":"https://cdn.example.com/small.jpg"}}}]}`, http.StatusOK)
		svc := stubbedImageService(srv)

		if got := svc.CoverFor(context.Background(), "One Piece"); got != "https://cdn.example.com/small.jpg" {
			t.Errorf("CoverFor = %q, want small image", got)
		}
	})

	t.Run("no results yields placeholder", func(t *testing.T) {
		srv := jikanStub(t, `{"data":[]}`, http.StatusOK)
		svc := stubbedImageService(srv)

		if got := svc.CoverFor(context.Background(), "zzz no existe"); got != placeholderURL {
			t.Errorf("CoverFor = %q, want placeholder", got)
		}
	})

	t.Run("upstream failure yields placeholder", func(t *testing.T) {
		srv := jikanStub(t, `rate limited`, http.StatusTooManyRequests)
		svc := stubbedImageService(srv)

		if got := svc.CoverFor(context.Background(), "One Piece"); got != placeholderURL {
			t.Errorf("CoverFor = %q, want placeholder", got)
		}
	})

	t.Run("unreachable server yields placeholder", func(t *testing.T) {
		srv := jikanStub(t, "", http.StatusOK)
		svc := stubbedImageService(srv)
		srv.Close()

		if got := svc.CoverFor(context.Background(), "One Piece"); got != placeholderURL {
			t.Errorf("CoverFor = %q, want placeholder", got)
		}
	})
}

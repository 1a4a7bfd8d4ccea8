package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testRateLimiterConfig(generalBurst, writeBurst int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(0.001), // テスト中に補充されない低レート
		GeneralBurst:    generalBurst,
		WriteRate:       rate.Limit(0.001),
		WriteBurst:      writeBurst,
		CleanupInterval: time.Hour,
	}
}

func authedRequest(personID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	return req.WithContext(ContextWithPersonID(req.Context(), personID))
}

// バースト上限を超えたリクエストが429になることを検証
func TestRateLimiter_GeneralMiddleware_Exceeded(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(3, 1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest("person-1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("person-1"))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header should be set")
	}
}

// レート制限がユーザーごとに独立していることを検証
func TestRateLimiter_PerUserIsolation(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// person-1の上限を使い切る
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("person-1"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("person-1"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("person-1 second request: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// person-2には影響しない
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("person-2"))
	if rec.Code != http.StatusOK {
		t.Errorf("person-2: status = %d, want %d", rec.Code, http.StatusOK)
	}

	if got := rl.GeneralLimiterCount(); got != 2 {
		t.Errorf("GeneralLimiterCount = %d, want 2", got)
	}
}

// 書き込み系の制限がAPI全般の制限と独立に動作することを検証
func TestRateLimiter_WriteMiddleware_Independent(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(10, 1))
	defer rl.Stop()

	general := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	write := rl.WriteMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// 書き込み系の上限を使い切る
	rec := httptest.NewRecorder()
	write.ServeHTTP(rec, authedRequest("person-1"))
	rec = httptest.NewRecorder()
	write.ServeHTTP(rec, authedRequest("person-1"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("write second request: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// API全般の制限はまだ余裕がある
	rec = httptest.NewRecorder()
	general.ServeHTTP(rec, authedRequest("person-1"))
	if rec.Code != http.StatusOK {
		t.Errorf("general after write exhausted: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// 未認証コンテキストのリクエストが401になることを検証
func TestRateLimiter_MissingPersonID(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(10, 10))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be called without person ID")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// RateLimiterConfigFromLimitsの換算を検証
func TestRateLimiterConfigFromLimits(t *testing.T) {
	cfg := RateLimiterConfigFromLimits(60, 12)

	if cfg.GeneralRate != rate.Limit(1.0) {
		t.Errorf("GeneralRate = %v, want 1.0", cfg.GeneralRate)
	}
	if cfg.GeneralBurst != 60 {
		t.Errorf("GeneralBurst = %d, want 60", cfg.GeneralBurst)
	}
	if cfg.WriteRate != rate.Limit(0.2) {
		t.Errorf("WriteRate = %v, want 0.2", cfg.WriteRate)
	}
	if cfg.WriteBurst != 12 {
		t.Errorf("WriteBurst = %d, want 12", cfg.WriteBurst)
	}

	// 0以下はデフォルトを維持
	def := DefaultRateLimiterConfig()
	cfg = RateLimiterConfigFromLimits(0, -1)
	if cfg.GeneralRate != def.GeneralRate || cfg.WriteBurst != def.WriteBurst {
		t.Error("non-positive limits should keep defaults")
	}
}

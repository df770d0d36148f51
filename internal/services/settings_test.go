package services

import (
	"context"
	"testing"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/types"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestSettingsGetReturnsDefaultsWhenMissing(t *testing.T) {
	env := newTestEnv(t)
	userID := registerUser(t, env, "nosettings@example.com")

	// Simulate an account that predates settings rows.
	if err := env.db.Where("user_id = ?", userID).Delete(&types.AccessibilitySettings{}).Error; err != nil {
		t.Fatalf("clear settings: %v", err)
	}

	settings, err := env.settings.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.Theme != "light" || settings.FontFamily != "professional" || settings.FontSize != 100 {
		t.Fatalf("defaults = %+v", settings)
	}
}

func TestSettingsUpdateUpsertsSingleRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := registerUser(t, env, "settings@example.com")

	first, err := env.settings.Update(ctx, userID, SettingsUpdate{
		Theme:    strPtr("dark"),
		FontSize: intPtr(120),
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if first.Theme != "dark" || first.FontSize != 120 {
		t.Fatalf("first update = %+v", first)
	}

	second, err := env.settings.Update(ctx, userID, SettingsUpdate{
		Theme:        strPtr("high-contrast"),
		HighContrast: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if second.Theme != "high-contrast" || !second.HighContrast {
		t.Fatalf("second update = %+v", second)
	}
	// Fields untouched by the second update survive the first.
	if second.FontSize != 120 {
		t.Fatalf("fontSize = %d, want merged 120", second.FontSize)
	}

	var count int64
	if err := env.db.Model(&types.AccessibilitySettings{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("settings rows = %d, want 1", count)
	}

	stored, err := env.settings.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Theme != "high-contrast" || stored.FontSize != 120 {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestSettingsUpdateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := registerUser(t, env, "badsettings@example.com")

	cases := []struct {
		name   string
		update SettingsUpdate
		code   string
	}{
		{name: "unknown_theme", update: SettingsUpdate{Theme: strPtr("sepia")}, code: "invalid_theme"},
		{name: "font_too_small", update: SettingsUpdate{FontSize: intPtr(10)}, code: "invalid_font_size"},
		{name: "font_too_large", update: SettingsUpdate{FontSize: intPtr(500)}, code: "invalid_font_size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.settings.Update(ctx, userID, tc.update)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if apierr.StatusOf(err) != 400 || apierr.CodeOf(err) != tc.code {
				t.Fatalf("status=%d code=%q, want 400 %s", apierr.StatusOf(err), apierr.CodeOf(err), tc.code)
			}
		})
	}
}

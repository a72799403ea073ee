// ABOUTME: Tests for condition id to icon and description mapping.
// ABOUTME: Covers every range boundary and the unknown fallback.
package weatherutil

import "testing"

func TestIconForCondition(t *testing.T) {
	tests := []struct {
		id    int
		small Icon
		large Icon
	}{
		{200, "ic_storm", "art_storm"},
		{232, "ic_storm", "art_storm"},
		{300, "ic_light_rain", "art_light_rain"},
		{321, "ic_light_rain", "art_light_rain"},
		{500, "ic_rain", "art_rain"},
		{511, "ic_snow", "art_snow"},
		{520, "ic_rain", "art_rain"},
		{600, "ic_snow", "art_snow"},
		{711, "ic_fog", "art_fog"},
		{761, "ic_fog", "art_fog"},
		{781, "ic_storm", "art_storm"},
		{800, "ic_clear", "art_clear"},
		{801, "ic_light_clouds", "art_light_clouds"},
		{804, "ic_clouds", "art_clouds"},
		{900, "ic_storm", "art_storm"},
		{951, "ic_clear", "art_clear"},
		{962, "ic_storm", "art_storm"},
		{42, "ic_storm", "art_storm"},
	}

	for _, tt := range tests {
		if got := IconForCondition(tt.id, false); got != tt.small {
			t.Errorf("IconForCondition(%d, small) = %q, want %q", tt.id, got, tt.small)
		}
		if got := IconForCondition(tt.id, true); got != tt.large {
			t.Errorf("IconForCondition(%d, large) = %q, want %q", tt.id, got, tt.large)
		}
	}
}

func TestIconHelpers(t *testing.T) {
	large := IconForCondition(800, true)
	small := IconForCondition(800, false)

	if !large.IsLarge() || small.IsLarge() {
		t.Error("IsLarge mismatch")
	}
	if large.Category() != CategoryClear || small.Category() != CategoryClear {
		t.Errorf("Category() = %q / %q", large.Category(), small.Category())
	}
}

func TestDescriptionForCondition(t *testing.T) {
	if got := DescriptionForCondition(800); got != "Clear" {
		t.Errorf("DescriptionForCondition(800) = %q", got)
	}
	if got := DescriptionForCondition(711); got != "Smoke" {
		t.Errorf("DescriptionForCondition(711) = %q", got)
	}
	if got := DescriptionForCondition(1); got != "Unknown (1)" {
		t.Errorf("DescriptionForCondition(1) = %q", got)
	}
}

package model

import "testing"

func TestParsePlayerState(t *testing.T) {
	tests := []struct {
		marker string
		want   PlayerState
	}{
		{"status_abbr_inactive", Inactive},
		{"status_abbr_longinactive", Inactive},
		{"status_abbr_vacation", Vacation},
		{"status_abbr_active", Active},
		{"(i)", Inactive},
		{"I", Inactive},
		{"v", Vacation},
		{"status_abbr_honorable", Unknown},
		{"status_abbr_banned", Unknown},
		{"", Unknown},
		{"???", Unknown},
	}
	for _, tc := range tests {
		if got := ParsePlayerState(tc.marker); got != tc.want {
			t.Errorf("ParsePlayerState(%q) = %v, want %v", tc.marker, got, tc.want)
		}
	}
}

func TestResourceBundleTotalExcludesEnergy(t *testing.T) {
	r := ResourceBundle{Metal: 100, Crystal: 50, Deuterium: 25, Energy: 9000}
	if got := r.Total(); got != 175 {
		t.Errorf("Total() = %d, want 175", got)
	}
}

func TestSpyReportValue(t *testing.T) {
	r := SpyReport{
		Resources: ResourceBundle{Metal: 1000, Crystal: 500, Deuterium: 500},
		Loot:      0.5,
	}
	if got := r.Value(); got != 1000 {
		t.Errorf("Value() = %f, want 1000", got)
	}
}

func TestFindItem(t *testing.T) {
	items := []ItemLevel{{Code: "401", Name: "Rocket Launcher", Level: 12}}
	if it, ok := FindItem(items, "401"); !ok || it.Level != 12 {
		t.Errorf("FindItem(401) = %+v, %v", it, ok)
	}
	if _, ok := FindItem(items, "402"); ok {
		t.Error("FindItem(402) should report not found")
	}
}

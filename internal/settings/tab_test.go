package settings

import "testing"

func TestNormalizeTab(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Tab
	}{
		{name: "browse is valid", raw: string(TabBrowse), want: TabBrowse},
		{name: "favorites is valid", raw: string(TabFavorites), want: TabFavorites},
		{name: "case and space insensitive", raw: " Favorites ", want: TabFavorites},
		{name: "empty defaults", raw: "", want: TabBrowse},
		{name: "invalid defaults", raw: "invalid", want: TabBrowse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTab(tt.raw); got != tt.want {
				t.Fatalf("NormalizeTab(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

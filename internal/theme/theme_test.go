package theme

import "testing"

func TestFor(t *testing.T) {
	if got := For(true); got.Background != "#1a1f2e" || got.Name != "dark" {
		t.Fatalf("dark = %+v", got)
	}
	if got := For(false); got.Background != "#f5f1e8" || got.Accent != "#a67c52" {
		t.Fatalf("light = %+v", got)
	}
}

func TestHelpersKeepText(t *testing.T) {
	th := Dark()
	for _, s := range []string{th.DividerText("│"), th.Primary("a"), th.Muted("b"), th.Title("c"), th.SelectedLine("d"), th.Button("e")} {
		if s == "" {
			t.Fatal("empty render")
		}
	}
}

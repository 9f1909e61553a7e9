package atlas

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	for _, c := range []struct {
		in   string
		want string
	}{
		{"head", "head"},
		{"  head  ", "head"},
		{"head.png", "head"},
		{"head.PNG", "head"},
		{"head.jpeg", "head"},
		{"sprites/body/head.png", "head"},
		{"sprites\\body\\head.bmp", "head"},
		{"mixed/path\\head", "head"},
		{"head.png ", "head"},
		{"dotted.name", "dotted.name"},
		{"", ""},
		{"   ", ""},
		{".png", ""},
	} {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveName(t *testing.T) {
	aliases := map[string]string{"old_head": "head"}
	if got := ResolveName("sprites/old_head.png", aliases); got != "head" {
		t.Errorf("got %q, want head", got)
	}
	if got := ResolveName("arm", aliases); got != "arm" {
		t.Errorf("got %q, want arm", got)
	}
	if got := ResolveName("  ", aliases); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestNormalizeAliases(t *testing.T) {
	got := NormalizeAliases(map[string]string{" a.png ": "ui/b.png"})
	if got["a"] != "b" {
		t.Errorf("got %v", got)
	}
	if NormalizeAliases(nil) != nil {
		t.Error("nil aliases should stay nil")
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog([]Piece{
		{Name: " head ", W: 4, H: 4},
		{Name: "arm", ScaleX: 0.5, W: 2, H: 2},
		{Name: "head", W: 9, H: 9}, // duplicate, first wins
		{Name: ""},
	})

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	head, ok := c.Get("head")
	if !ok || head.W != 4 {
		t.Errorf("Get(head) = %+v, %v", head, ok)
	}
	if head.ScaleX != 1 || head.ScaleY != 1 {
		t.Errorf("unset scale should default to 1, got %+v", head)
	}
	arm, _ := c.Get("arm")
	if arm.ScaleX != 0.5 || arm.ScaleY != 1 {
		t.Errorf("arm scale = %v,%v", arm.ScaleX, arm.ScaleY)
	}
	if miss, ok := c.Get("leg"); ok || miss.ScaleX != 1 {
		t.Errorf("Get(leg) = %+v, %v", miss, ok)
	}
}

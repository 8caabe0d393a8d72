package refdata

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedLoads(t *testing.T) {
	s, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}

	c, err := s.Character("10000073")
	if err != nil {
		t.Fatalf("Character: %v", err)
	}
	if c.Name != "Nahida" || c.ID != "10000073" {
		t.Fatalf("character=%+v", c)
	}

	w, err := s.Weapon("14511")
	if err != nil {
		t.Fatalf("Weapon: %v", err)
	}
	if w.Name != "A Thousand Floating Dreams" {
		t.Fatalf("weapon name=%q", w.Name)
	}

	level, err := s.Prop("4001")
	if err != nil {
		t.Fatalf("Prop: %v", err)
	}
	if level.Name != "Level" {
		t.Fatalf("prop 4001=%q, want Level", level.Name)
	}

	for table, n := range s.Counts() {
		if n == 0 {
			t.Fatalf("table %s is empty", table)
		}
	}
}

func TestEmbeddedResolvesCurrentIDs(t *testing.T) {
	s, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}

	characters := map[string]string{
		"10000089": "Furina",
		"10000096": "Arlecchino",
		"10000106": "Mavuika",
		"10000050": "Thoma",
	}
	for id, want := range characters {
		if c, err := s.Character(id); err != nil || c.Name != want {
			t.Fatalf("character %s=%+v err=%v, want %s", id, c, err, want)
		}
	}

	weapons := map[string]string{
		"11509": "Mistsplitter Reforged",
		"12512": "Verdict",
		"13512": "Crimson Moon's Semblance",
		"14403": "Sacrificial Fragments",
		"15503": "Elegy for the End",
	}
	for id, want := range weapons {
		if w, err := s.Weapon(id); err != nil || w.Name != want {
			t.Fatalf("weapon %s=%+v err=%v, want %s", id, w, err, want)
		}
	}

	traveler, err := s.Character(CharacterKey(10000005, 506))
	if err != nil || traveler.Element != "Geo" {
		t.Fatalf("geo traveler=%+v err=%v", traveler, err)
	}
}

func TestShowcaseStatsOrder(t *testing.T) {
	s, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	stats := s.ShowcaseStats()
	if len(stats) == 0 {
		t.Fatalf("no showcase stats")
	}
	if stats[0].ID != "2000" {
		t.Fatalf("first showcase stat=%s, want 2000 (Max HP)", stats[0].ID)
	}
	for i := 1; i < len(stats); i++ {
		if stats[i-1].Showcase >= stats[i].Showcase {
			t.Fatalf("stats not ordered: %+v", stats)
		}
	}
}

func TestLookupNotFound(t *testing.T) {
	s, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	if _, err := s.Character("1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	if _, err := s.Namecard("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{
			name: "duplicate across files",
			fsys: fstest.MapFS{
				"characters.json":       {Data: []byte(`{"1":{"name":"A"}}`)},
				"characters.extra.json": {Data: []byte(`{"1":{"name":"B"}}`)},
			},
			wantErr: "duplicate ID '1'",
		},
		{
			name: "bad json",
			fsys: fstest.MapFS{
				"characters.json": {Data: []byte(`{"1":`)},
			},
			wantErr: "failed to parse reference JSON",
		},
		{
			name: "unknown table",
			fsys: fstest.MapFS{
				"characters.json": {Data: []byte(`{"1":{"name":"A"}}`)},
				"artifacts.json":  {Data: []byte(`{}`)},
			},
			wantErr: "does not name a known table",
		},
		{
			name:    "empty",
			fsys:    fstest.MapFS{},
			wantErr: "no characters loaded",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.fsys)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err=%q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadIgnoresNonJSON(t *testing.T) {
	s, err := Load(fstest.MapFS{
		"README.md":        {Data: []byte("notes")},
		"nested/pfps.json": {Data: []byte(`{"1":{"name":"Paimon","icon":"UI_AvatarIcon_Paimon"}}`)},
		"characters.json":  {Data: []byte(`{"10000073":{"name":"Nahida"}}`)},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pfp, err := s.ProfilePicture("1")
	if err != nil {
		t.Fatalf("ProfilePicture: %v", err)
	}
	if pfp.Name != "Paimon" {
		t.Fatalf("pfp=%+v", pfp)
	}
}

func TestIconURL(t *testing.T) {
	if got := IconURL("https://enka.network/ui/", "UI_AvatarIcon_Nahida"); got != "https://enka.network/ui/UI_AvatarIcon_Nahida.png" {
		t.Fatalf("IconURL=%q", got)
	}
	if got := IconURL("https://enka.network/ui", ""); got != "" {
		t.Fatalf("IconURL for empty icon=%q, want empty", got)
	}
}

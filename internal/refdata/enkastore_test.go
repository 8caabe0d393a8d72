package refdata

import (
	"strings"
	"testing"
	"testing/fstest"
)

func enkaStoreFS() fstest.MapFS {
	return fstest.MapFS{
		"loc.json": {Data: []byte(`{
			"en": {"712501082": "Nahida", "1533656818": "Traveler"},
			"ja": {"712501082": "ナヒーダ"}
		}`)},
		"characters.json": {Data: []byte(`{
			"10000073": {"Element": "Grass", "NameTextMapHash": 712501082, "SideIconName": "UI_AvatarIcon_Side_Nahida", "QualityType": "QUALITY_ORANGE", "WeaponType": "WEAPON_CATALYST"},
			"10000007-704": {"Element": "Wind", "NameTextMapHash": 1533656818, "SideIconName": "UI_AvatarIcon_Side_PlayerGirl", "QualityType": "QUALITY_ORANGE", "WeaponType": "WEAPON_SWORD_ONE_HAND"}
		}`)},
		"namecards.json": {Data: []byte(`{"210189": {"icon": "UI_NameCardPic_Nahida_P"}}`)},
		"pfps.json": {Data: []byte(`{
			"1": {"iconPath": "UI_AvatarIcon_PlayerGirl_Circle"},
			"2300": {"iconPath": "UI_AvatarIcon_Nahida_Circle"},
			"9000": {"iconPath": "UI_PlayerIcon_Event_Circle"}
		}`)},
	}
}

func TestFromEnkaStore(t *testing.T) {
	tables, err := FromEnkaStore(enkaStoreFS(), "en")
	if err != nil {
		t.Fatalf("FromEnkaStore: %v", err)
	}

	nahida := tables.Characters["10000073"]
	want := Character{Name: "Nahida", Icon: "UI_AvatarIcon_Nahida", Rarity: 5, Element: "Dendro", WeaponType: "Catalyst"}
	if nahida != want {
		t.Fatalf("nahida=%+v, want %+v", nahida, want)
	}
	if traveler := tables.Characters[CharacterKey(10000007, 704)]; traveler.Element != "Anemo" || traveler.WeaponType != "Sword" {
		t.Fatalf("traveler=%+v", traveler)
	}

	if nc := tables.Namecards["210189"]; nc.Name != "Nahida" || nc.Icon != "UI_NameCardPic_Nahida_P" {
		t.Fatalf("namecard=%+v", nc)
	}

	for id, wantName := range map[string]string{"1": "Traveler", "2300": "Nahida", "9000": "UI_PlayerIcon_Event"} {
		if got := tables.Pfps[id].Name; got != wantName {
			t.Fatalf("pfp %s name=%q, want %q", id, got, wantName)
		}
	}
}

func TestFromEnkaStoreErrors(t *testing.T) {
	if _, err := FromEnkaStore(enkaStoreFS(), "fr"); err == nil || !strings.Contains(err.Error(), `no "fr" section`) {
		t.Fatalf("err=%v, want missing language", err)
	}

	fsys := enkaStoreFS()
	fsys["characters.json"] = &fstest.MapFile{Data: []byte(`{"10000073": {"Element": "Grass", "NameTextMapHash": 1}}`)}
	if _, err := FromEnkaStore(fsys, "en"); err == nil || !strings.Contains(err.Error(), "no en name for hash 1") {
		t.Fatalf("err=%v, want missing name", err)
	}

	fsys = enkaStoreFS()
	delete(fsys, "pfps.json")
	if _, err := FromEnkaStore(fsys, "en"); err == nil || !strings.Contains(err.Error(), "pfps.json") {
		t.Fatalf("err=%v, want missing pfps.json", err)
	}
}

func TestTablesWriteDirLoads(t *testing.T) {
	tables, err := FromEnkaStore(enkaStoreFS(), "en")
	if err != nil {
		t.Fatalf("FromEnkaStore: %v", err)
	}
	dir := t.TempDir()
	if err := tables.WriteDir(dir); err != nil {
		t.Fatalf("WriteDir: %v", err)
	}

	s, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if c, err := s.Character("10000073"); err != nil || c.Name != "Nahida" || c.ID != "10000073" {
		t.Fatalf("character=%+v err=%v", c, err)
	}
	// Weapons and props come from the bundled tables.
	if w, err := s.Weapon("14511"); err != nil || w.Name != "A Thousand Floating Dreams" {
		t.Fatalf("weapon=%+v err=%v", w, err)
	}
	if len(s.ShowcaseStats()) == 0 {
		t.Fatalf("no showcase stats after WriteDir")
	}
}

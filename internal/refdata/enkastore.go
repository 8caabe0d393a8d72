package refdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File names in Enka's published store directory.
const (
	storeCharacters = "characters.json"
	storeNamecards  = "namecards.json"
	storePfps       = "pfps.json"
	storeLoc        = "loc.json"
)

type storeCharacter struct {
	Element         string      `json:"Element"`
	NameTextMapHash json.Number `json:"NameTextMapHash"`
	SideIconName    string      `json:"SideIconName"`
	QualityType     string      `json:"QualityType"`
	WeaponType      string      `json:"WeaponType"`
}

type storeIcon struct {
	Icon     string `json:"icon"`
	IconPath string `json:"iconPath"`
}

var (
	storeElements = map[string]string{
		"Fire":     "Pyro",
		"Water":    "Hydro",
		"Wind":     "Anemo",
		"Electric": "Electro",
		"Grass":    "Dendro",
		"Ice":      "Cryo",
		"Rock":     "Geo",
	}
	storeWeaponTypes = map[string]string{
		"WEAPON_SWORD_ONE_HAND": "Sword",
		"WEAPON_CLAYMORE":       "Claymore",
		"WEAPON_POLE":           "Polearm",
		"WEAPON_CATALYST":       "Catalyst",
		"WEAPON_BOW":            "Bow",
	}
	storeRarities = map[string]int{
		"QUALITY_ORANGE":    5,
		"QUALITY_ORANGE_SP": 5,
		"QUALITY_PURPLE":    4,
	}
)

// Tables holds the tables converted from Enka's store.
type Tables struct {
	Characters map[string]Character
	Namecards  map[string]Item
	Pfps       map[string]Item
}

// FromEnkaStore converts the store files in fsys, naming characters from the
// lang section of loc.json. The store carries no namecard or profile picture
// names, so namecards are named after their artwork and profile pictures
// after the character whose icon they use.
func FromEnkaStore(fsys fs.FS, lang string) (*Tables, error) {
	var loc map[string]map[string]string
	if err := readStoreFile(fsys, storeLoc, &loc); err != nil {
		return nil, err
	}
	names, ok := loc[lang]
	if !ok {
		return nil, fmt.Errorf("%s has no %q section", storeLoc, lang)
	}

	var chars map[string]storeCharacter
	if err := readStoreFile(fsys, storeCharacters, &chars); err != nil {
		return nil, err
	}
	var namecards, pfps map[string]storeIcon
	if err := readStoreFile(fsys, storeNamecards, &namecards); err != nil {
		return nil, err
	}
	if err := readStoreFile(fsys, storePfps, &pfps); err != nil {
		return nil, err
	}

	t := &Tables{
		Characters: make(map[string]Character, len(chars)),
		Namecards:  make(map[string]Item, len(namecards)),
		Pfps:       make(map[string]Item, len(pfps)),
	}
	var convErrors []error
	nameByIcon := make(map[string]string)

	for id, c := range chars {
		name, ok := names[c.NameTextMapHash.String()]
		if !ok {
			convErrors = append(convErrors, fmt.Errorf("character %s: no %s name for hash %s", id, lang, c.NameTextMapHash))
			continue
		}
		element, ok := storeElements[c.Element]
		if !ok && c.Element != "" {
			convErrors = append(convErrors, fmt.Errorf("character %s: unknown element %q", id, c.Element))
			continue
		}
		icon := strings.Replace(c.SideIconName, "_Side_", "_", 1)
		t.Characters[id] = Character{
			Name:       name,
			Icon:       icon,
			Rarity:     storeRarities[c.QualityType],
			Element:    element,
			WeaponType: storeWeaponTypes[c.WeaponType],
		}
		nameByIcon[icon] = name
	}

	for id, nc := range namecards {
		name := strings.TrimSuffix(strings.TrimPrefix(nc.Icon, "UI_NameCardPic_"), "_P")
		t.Namecards[id] = Item{Name: name, Icon: nc.Icon}
	}

	for id, pfp := range pfps {
		base := strings.TrimSuffix(pfp.IconPath, "_Circle")
		name, ok := nameByIcon[base]
		if !ok {
			name = base
		}
		t.Pfps[id] = Item{Name: name, Icon: pfp.IconPath}
	}

	if len(convErrors) > 0 {
		return nil, fmt.Errorf("errors converting Enka store: %w", errors.Join(convErrors...))
	}
	return t, nil
}

func readStoreFile(fsys fs.FS, name string, dst any) error {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read store file %s: %w", name, err)
	}
	if err := json.Unmarshal(content, dst); err != nil {
		return fmt.Errorf("failed to parse store file %s: %w", name, err)
	}
	return nil
}

// WriteDir writes t as data files under dir, together with the bundled
// tables Enka's store has no equivalent for. The result loads with LoadDir.
func (t *Tables) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	converted := map[string]any{
		tableCharacters: t.Characters,
		tableNamecards:  t.Namecards,
		tablePfps:       t.Pfps,
	}
	for table, entries := range converted {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", table, err)
		}
		if err := writeTable(dir, table, data); err != nil {
			return err
		}
	}

	for _, table := range []string{tableWeapons, tableProps, tableFightProps} {
		data, err := embedded.ReadFile("data/" + table + ".json")
		if err != nil {
			return fmt.Errorf("failed to read bundled %s: %w", table, err)
		}
		if err := writeTable(dir, table, data); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(dir, table string, data []byte) error {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	file := filepath.Join(dir, table+".json")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}

package showcase

import (
	"errors"
	"fmt"
	"strconv"

	"hoyox/internal/enka"
	"hoyox/internal/refdata"
)

// Guidance is shown to the user when a profile carries no showcase details.
const Guidance = "Unable to fetch data from character showcase. Make sure your showcase is PUBLIC and has at least 1 character."

// ErrUnavailable means the response had no avatarInfoList.
var ErrUnavailable = errors.New("character showcase is hidden or empty")

// propMap keys.
const (
	PropLevel     = "4001"
	PropAscension = "1002"
)

// Entry is one showcased character.
type Entry struct {
	AvatarID       int
	Name           string
	Element        string // Empty when the character is not in the tables
	WeaponType     string
	Rarity         int
	Level          int
	Ascension      int
	Constellations int
	Weapon         *Weapon // Nil if the equip list had no weapon
	Artifacts      []int   // Enhancement level (+0 to +20) of each equipped artifact
	Stats          []Stat
}

type Weapon struct {
	ID         int
	Name       string
	Type       string
	Rarity     int
	Level      int
	Refinement int
}

type Stat struct {
	Name    string
	Value   float64
	Percent bool
}

// Extract turns the showcase of resp into entries, resolving names through
// store. It returns ErrUnavailable, without touching store, when the list is
// absent.
func Extract(resp *enka.Response, store refdata.Store) ([]Entry, error) {
	if resp == nil || !resp.HasAvatarInfoList() {
		return nil, ErrUnavailable
	}

	stats := store.ShowcaseStats()
	entries := make([]Entry, 0, len(resp.AvatarInfoList))
	for i, avatar := range resp.AvatarInfoList {
		entry, err := extractEntry(avatar, store, stats)
		if err != nil {
			return nil, fmt.Errorf("showcase slot %d (avatar %d): %w", i+1, avatar.AvatarID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func extractEntry(avatar enka.AvatarInfo, store refdata.Store, stats []refdata.Prop) (Entry, error) {
	entry := Entry{
		AvatarID:       avatar.AvatarID,
		Name:           fmt.Sprintf("Unknown (%d)", avatar.AvatarID),
		Constellations: len(avatar.TalentIDList),
	}
	if c, err := lookupCharacter(avatar, store); err == nil {
		entry.Name = c.Name
		entry.Element = c.Element
		entry.WeaponType = c.WeaponType
		entry.Rarity = c.Rarity
	} else if !errors.Is(err, refdata.ErrNotFound) {
		return Entry{}, err
	}

	var err error
	if entry.Level, err = propInt(avatar.PropMap, PropLevel); err != nil {
		return Entry{}, err
	}
	if entry.Ascension, err = propInt(avatar.PropMap, PropAscension); err != nil {
		return Entry{}, err
	}

	for _, equip := range avatar.EquipList {
		switch {
		case equip.Flat.ItemType == enka.ItemTypeWeapon && equip.Weapon != nil:
			if entry.Weapon == nil {
				entry.Weapon = weaponFor(equip, store)
			}
		case equip.Flat.ItemType == enka.ItemTypeReliquary && equip.Reliquary != nil:
			entry.Artifacts = append(entry.Artifacts, max(equip.Reliquary.Level-1, 0))
		}
	}

	for _, prop := range stats {
		value, ok := avatar.FightPropMap[prop.ID]
		if !ok {
			continue
		}
		entry.Stats = append(entry.Stats, Stat{Name: prop.Name, Value: value, Percent: prop.Percent})
	}
	return entry, nil
}

// lookupCharacter prefers the skill depot entry, which is how the tables tell
// the Traveler's elements apart.
func lookupCharacter(avatar enka.AvatarInfo, store refdata.Store) (refdata.Character, error) {
	if avatar.SkillDepotID != 0 {
		c, err := store.Character(refdata.CharacterKey(avatar.AvatarID, avatar.SkillDepotID))
		if err == nil || !errors.Is(err, refdata.ErrNotFound) {
			return c, err
		}
	}
	return store.Character(strconv.Itoa(avatar.AvatarID))
}

func weaponFor(equip enka.Equip, store refdata.Store) *Weapon {
	w := &Weapon{
		ID:         equip.ItemID,
		Name:       fmt.Sprintf("Unknown weapon (%d)", equip.ItemID),
		Rarity:     equip.Flat.RankLevel,
		Level:      equip.Weapon.Level,
		Refinement: 1,
	}
	if ref, err := store.Weapon(strconv.Itoa(equip.ItemID)); err == nil {
		w.Name = ref.Name
		w.Type = ref.Type
		w.Rarity = ref.Rarity
	}
	// affixMap holds a single entry: refinement rank minus one.
	for _, affix := range equip.Weapon.AffixMap {
		w.Refinement = affix + 1
		break
	}
	return w
}

// propInt reads a propMap value. Absent keys read as 0.
func propInt(props map[string]enka.PropValue, key string) (int, error) {
	prop, ok := props[key]
	if !ok || prop.Val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(prop.Val)
	if err != nil {
		return 0, fmt.Errorf("prop %s has non-numeric value %q: %w", key, prop.Val, err)
	}
	return n, nil
}

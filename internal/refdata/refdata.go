package refdata

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.json
var embedded embed.FS

// ErrNotFound is returned by every Store lookup for an unknown ID.
var ErrNotFound = errors.New("not found")

// Character describes a playable character keyed by its avatar ID. The
// Traveler changes element with its skill depot, so it is also listed under
// "avatarId-skillDepotId" keys that carry the element; the plain avatar ID
// entry leaves Element empty.
type Character struct {
	ID         string `json:"-"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Rarity     int    `json:"rarity"`
	Element    string `json:"element,omitempty"`
	WeaponType string `json:"weaponType"`
}

// CharacterKey is the table key of a character in a given skill depot.
func CharacterKey(avatarID, skillDepotID int) string {
	return fmt.Sprintf("%d-%d", avatarID, skillDepotID)
}

// Weapon describes a weapon keyed by its item ID.
type Weapon struct {
	ID     string `json:"-"`
	Name   string `json:"name"`
	Icon   string `json:"icon,omitempty"`
	Rarity int    `json:"rarity"`
	Type   string `json:"type"`
}

// Item is the shape shared by namecards and profile pictures.
type Item struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Prop names a key of an avatar's propMap or fightPropMap.
// Showcase is the 1-based display order for stats shown in builds; 0 hides it.
type Prop struct {
	ID       string `json:"-"`
	Name     string `json:"name"`
	Percent  bool   `json:"percent,omitempty"`
	Showcase int    `json:"showcase,omitempty"`
}

// Store is the read-only view over the bundled lookup tables.
type Store interface {
	Character(id string) (Character, error)
	Weapon(id string) (Weapon, error)
	Namecard(id string) (Item, error)
	ProfilePicture(id string) (Item, error)
	Prop(id string) (Prop, error)
	ShowcaseStats() []Prop
	Counts() map[string]int
}

// Table names, taken from the part of a data file name before the first dot
// (characters.json, characters.travelers.json, ...).
const (
	tableCharacters = "characters"
	tableWeapons    = "weapons"
	tableNamecards  = "namecards"
	tablePfps       = "pfps"
	tableProps      = "props"
	tableFightProps = "fightprops"
)

// InMemoryStore holds the loaded tables. It is never written after Load
// returns, so concurrent reads need no locking.
type InMemoryStore struct {
	characters map[string]Character
	weapons    map[string]Weapon
	namecards  map[string]Item
	pfps       map[string]Item
	props      map[string]Prop
	fightProps map[string]Prop
	showcase   []Prop
}

// Embedded loads the tables compiled into the binary.
func Embedded() (*InMemoryStore, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded reference data: %w", err)
	}
	return Load(sub)
}

// LoadDir loads the tables from a directory on disk.
func LoadDir(dir string) (*InMemoryStore, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reference data directory %s: %w", dir, err)
	}
	return Load(os.DirFS(dir))
}

// Load walks fsys and reads every .json file into the table its name selects.
// All problems are collected and returned together; a store is only returned
// when the data loaded cleanly.
func Load(fsys fs.FS) (*InMemoryStore, error) {
	s := &InMemoryStore{
		characters: make(map[string]Character),
		weapons:    make(map[string]Weapon),
		namecards:  make(map[string]Item),
		pfps:       make(map[string]Item),
		props:      make(map[string]Prop),
		fightProps: make(map[string]Prop),
	}

	var loadErrors []error

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			loadErrors = append(loadErrors, fmt.Errorf("error walking %s: %w", p, err))
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			loadErrors = append(loadErrors, fmt.Errorf("failed to read reference file %s: %w", p, err))
			return nil
		}

		table, _, _ := strings.Cut(path.Base(p), ".")
		switch table {
		case tableCharacters:
			loadErrors = append(loadErrors, decodeTable(p, content, s.characters, func(c *Character, id string) { c.ID = id })...)
		case tableWeapons:
			loadErrors = append(loadErrors, decodeTable(p, content, s.weapons, func(w *Weapon, id string) { w.ID = id })...)
		case tableNamecards:
			loadErrors = append(loadErrors, decodeTable(p, content, s.namecards, setItemID)...)
		case tablePfps:
			loadErrors = append(loadErrors, decodeTable(p, content, s.pfps, setItemID)...)
		case tableProps:
			loadErrors = append(loadErrors, decodeTable(p, content, s.props, setPropID)...)
		case tableFightProps:
			loadErrors = append(loadErrors, decodeTable(p, content, s.fightProps, setPropID)...)
		default:
			loadErrors = append(loadErrors, fmt.Errorf("reference file %s does not name a known table", p))
		}
		return nil
	})
	if err != nil {
		loadErrors = append(loadErrors, fmt.Errorf("error walking reference data: %w", err))
	}

	if len(s.characters) == 0 {
		loadErrors = append(loadErrors, errors.New("no characters loaded"))
	}

	if len(loadErrors) > 0 {
		return nil, fmt.Errorf("errors during reference data loading: %w", errors.Join(loadErrors...))
	}

	for _, prop := range s.fightProps {
		if prop.Showcase > 0 {
			s.showcase = append(s.showcase, prop)
		}
	}
	sort.Slice(s.showcase, func(i, j int) bool { return s.showcase[i].Showcase < s.showcase[j].Showcase })

	return s, nil
}

func setItemID(it *Item, id string) { it.ID = id }
func setPropID(p *Prop, id string) { p.ID = id }

// decodeTable parses one file (an object keyed by ID) into dst.
// IDs already present in dst, possibly from another file of the same table,
// are reported rather than overwritten.
func decodeTable[T any](file string, content []byte, dst map[string]T, setID func(*T, string)) []error {
	var entries map[string]T
	if err := json.Unmarshal(content, &entries); err != nil {
		return []error{fmt.Errorf("failed to parse reference JSON %s: %w", file, err)}
	}

	var errs []error
	for id, entry := range entries {
		if _, exists := dst[id]; exists {
			errs = append(errs, fmt.Errorf("duplicate ID '%s' found (from file %s)", id, file))
			continue
		}
		setID(&entry, id)
		dst[id] = entry
	}
	return errs
}

func (s *InMemoryStore) Character(id string) (Character, error) {
	c, ok := s.characters[id]
	if !ok {
		return Character{}, fmt.Errorf("character with ID '%s': %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryStore) Weapon(id string) (Weapon, error) {
	w, ok := s.weapons[id]
	if !ok {
		return Weapon{}, fmt.Errorf("weapon with ID '%s': %w", id, ErrNotFound)
	}
	return w, nil
}

func (s *InMemoryStore) Namecard(id string) (Item, error) {
	it, ok := s.namecards[id]
	if !ok {
		return Item{}, fmt.Errorf("namecard with ID '%s': %w", id, ErrNotFound)
	}
	return it, nil
}

func (s *InMemoryStore) ProfilePicture(id string) (Item, error) {
	it, ok := s.pfps[id]
	if !ok {
		return Item{}, fmt.Errorf("profile picture with ID '%s': %w", id, ErrNotFound)
	}
	return it, nil
}

func (s *InMemoryStore) Prop(id string) (Prop, error) {
	p, ok := s.props[id]
	if !ok {
		return Prop{}, fmt.Errorf("prop with ID '%s': %w", id, ErrNotFound)
	}
	return p, nil
}

// ShowcaseStats returns the fight props shown in a build, in display order.
func (s *InMemoryStore) ShowcaseStats() []Prop {
	out := make([]Prop, len(s.showcase))
	copy(out, s.showcase)
	return out
}

// Counts reports how many entries each table holds.
func (s *InMemoryStore) Counts() map[string]int {
	return map[string]int{
		tableCharacters: len(s.characters),
		tableWeapons:    len(s.weapons),
		tableNamecards:  len(s.namecards),
		tablePfps:       len(s.pfps),
		tableProps:      len(s.props),
		tableFightProps: len(s.fightProps),
	}
}

// IconURL turns an icon name from the tables into a fetchable asset URL.
func IconURL(assetBase, icon string) string {
	if icon == "" {
		return ""
	}
	return strings.TrimRight(assetBase, "/") + "/" + icon + ".png"
}

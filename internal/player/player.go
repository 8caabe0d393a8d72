package player

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Defaults shown when the profile leaves an optional field out.
const (
	NoSignature = "No signature"
	NoRecord    = "No record found"
)

// ErrMissingField is wrapped by FromPlayerInfo when a required key is absent
// or has the wrong type.
var ErrMissingField = errors.New("missing required field")

// Player is the flat record built from one profile fetch. It is not changed
// after FromPlayerInfo returns.
type Player struct {
	UID              string `json:"uid"`
	Name             string `json:"name"`
	Signature        string `json:"signature"`
	Level            int    `json:"level"`
	WorldLevel       int    `json:"worldLevel"`
	NameCardID       int    `json:"nameCardId"`
	ProfilePictureID int    `json:"profilePictureId,omitempty"`
	Achievements     int    `json:"achievements"`

	// Nil when the player has no record for the current period.
	Abyss   *AbyssProgress   `json:"abyss,omitempty"`
	Theatre *TheatreProgress `json:"theatre,omitempty"`
}

// AbyssProgress is the deepest Spiral Abyss chamber cleared this period.
type AbyssProgress struct {
	Floor   int `json:"floor"`
	Chamber int `json:"chamber"`
	Stars   int `json:"stars"`
}

// TheatreProgress is the Imaginarium Theatre act reached this period.
type TheatreProgress struct {
	Act   int `json:"act"`
	Stars int `json:"stars"`
}

// AbyssFloor is the floor as display text, or NoRecord.
func (p *Player) AbyssFloor() string {
	if p.Abyss == nil {
		return NoRecord
	}
	return fmt.Sprint(p.Abyss.Floor)
}

// TheatreAct is the act as display text, or NoRecord.
func (p *Player) TheatreAct() string {
	if p.Theatre == nil {
		return NoRecord
	}
	return fmt.Sprint(p.Theatre.Act)
}

// FromPlayerInfo builds a Player from the raw playerInfo object of a profile
// response. uid is the UID that was requested.
func FromPlayerInfo(uid string, raw json.RawMessage) (*Player, error) {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode playerInfo: %w", err)
	}
	if f == nil {
		return nil, fmt.Errorf("playerInfo is empty: %w", ErrMissingField)
	}

	p := &Player{UID: uid}
	var err error
	if p.Name, err = f.requireString("nickname"); err != nil {
		return nil, err
	}
	if p.Level, err = f.requireInt("level"); err != nil {
		return nil, err
	}
	if p.NameCardID, err = f.requireInt("nameCardId"); err != nil {
		return nil, err
	}
	if p.Achievements, err = f.requireInt("finishAchievementNum"); err != nil {
		return nil, err
	}

	for _, g := range optionalGroups {
		if !f.has(g.key) {
			g.fallback(p)
			continue
		}
		if err := g.extract(f, p); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", g.name, err)
		}
	}
	return p, nil
}

// optionalGroup fills one independently defaulted part of a Player. extract
// runs when key is present, fallback when it is not.
type optionalGroup struct {
	name     string
	key      string
	extract  func(f fields, p *Player) error
	fallback func(p *Player)
}

// optionalGroups run after the required fields, so fallbacks may rely on them.
var optionalGroups = []optionalGroup{
	{
		name: "signature",
		key:  "signature",
		extract: func(f fields, p *Player) (err error) {
			p.Signature, err = f.requireString("signature")
			return err
		},
		fallback: func(p *Player) { p.Signature = NoSignature },
	},
	{
		name: "world level",
		key:  "worldLevel",
		extract: func(f fields, p *Player) (err error) {
			p.WorldLevel, err = f.requireInt("worldLevel")
			return err
		},
		fallback: func(p *Player) {
			// World level 1 unlocks at adventure rank 20.
			if p.Level < 20 {
				p.WorldLevel = 0
			} else {
				p.WorldLevel = 1
			}
		},
	},
	{
		name: "spiral abyss",
		key:  "towerFloorIndex",
		extract: func(f fields, p *Player) error {
			floor, err := f.requireInt("towerFloorIndex")
			if err != nil {
				return err
			}
			chamber, err := f.optionalInt("towerLevelIndex")
			if err != nil {
				return err
			}
			stars, err := f.optionalInt("towerStarIndex")
			if err != nil {
				return err
			}
			p.Abyss = &AbyssProgress{Floor: floor, Chamber: chamber, Stars: stars}
			return nil
		},
		fallback: func(p *Player) { p.Abyss = nil },
	},
	{
		name: "imaginarium theatre",
		key:  "theaterActIndex",
		extract: func(f fields, p *Player) error {
			act, err := f.requireInt("theaterActIndex")
			if err != nil {
				return err
			}
			stars, err := f.optionalInt("theaterStarIndex")
			if err != nil {
				return err
			}
			p.Theatre = &TheatreProgress{Act: act, Stars: stars}
			return nil
		},
		fallback: func(p *Player) { p.Theatre = nil },
	},
	{
		name: "profile picture",
		key:  "profilePicture",
		extract: func(f fields, p *Player) error {
			var pic struct {
				ID       int `json:"id"`
				AvatarID int `json:"avatarId"`
			}
			if err := json.Unmarshal(f["profilePicture"], &pic); err != nil {
				return err
			}
			// Older profiles only carry the avatar the picture was taken from.
			p.ProfilePictureID = pic.ID
			if p.ProfilePictureID == 0 {
				p.ProfilePictureID = pic.AvatarID
			}
			return nil
		},
		fallback: func(p *Player) { p.ProfilePictureID = 0 },
	},
}

type fields map[string]json.RawMessage

func (f fields) has(key string) bool {
	raw, ok := f[key]
	return ok && string(raw) != "null"
}

func (f fields) requireString(key string) (string, error) {
	var s string
	if !f.has(key) {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	if err := json.Unmarshal(f[key], &s); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrMissingField, key)
	}
	return s, nil
}

func (f fields) requireInt(key string) (int, error) {
	var n int
	if !f.has(key) {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	if err := json.Unmarshal(f[key], &n); err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrMissingField, key)
	}
	return n, nil
}

func (f fields) optionalInt(key string) (int, error) {
	if !f.has(key) {
		return 0, nil
	}
	return f.requireInt(key)
}

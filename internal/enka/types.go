package enka

import (
	"bytes"
	"encoding/json"
)

// Response is the top level of /api/uid/{uid}/. playerInfo is kept raw so
// that the player builder can tell an absent key from a zero value.
type Response struct {
	UID            string          `json:"uid"`
	TTL            int             `json:"ttl,omitempty"`
	PlayerInfo     json.RawMessage `json:"playerInfo,omitempty"`
	AvatarInfoList []AvatarInfo    `json:"avatarInfoList,omitempty"`

	// hasAvatarList records whether the key was present at all, since an
	// absent list and an empty one mean different things to the showcase.
	hasAvatarList bool
}

func (r *Response) UnmarshalJSON(data []byte) error {
	type plain Response
	var aux struct {
		plain
		AvatarInfoList json.RawMessage `json:"avatarInfoList"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Response(aux.plain)
	r.AvatarInfoList = nil
	if isPresent(aux.AvatarInfoList) {
		r.hasAvatarList = true
		if err := json.Unmarshal(aux.AvatarInfoList, &r.AvatarInfoList); err != nil {
			return err
		}
	}
	return nil
}

// HasPlayerInfo reports whether playerInfo was present and not null.
func (r *Response) HasPlayerInfo() bool { return isPresent(r.PlayerInfo) }

// HasAvatarInfoList reports whether the showcase details were sent. Enka omits
// the key when the in-game showcase is hidden or empty.
func (r *Response) HasAvatarInfoList() bool { return r.hasAvatarList }

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// AvatarInfo is one character of the public showcase.
type AvatarInfo struct {
	AvatarID     int                  `json:"avatarId"`
	TalentIDList []int                `json:"talentIdList,omitempty"`
	PropMap      map[string]PropValue `json:"propMap"`
	FightPropMap map[string]float64   `json:"fightPropMap"`
	SkillDepotID int                  `json:"skillDepotId"`
	EquipList    []Equip              `json:"equipList"`
}

// PropValue is a propMap entry; Val is the decimal value as a string.
type PropValue struct {
	Type int    `json:"type"`
	Ival string `json:"ival,omitempty"`
	Val  string `json:"val,omitempty"`
}

// Item types carried in Equip.Flat.ItemType.
const (
	ItemTypeWeapon    = "ITEM_WEAPON"
	ItemTypeReliquary = "ITEM_RELIQUARY"
)

type Equip struct {
	ItemID    int             `json:"itemId"`
	Weapon    *EquipWeapon    `json:"weapon,omitempty"`
	Reliquary *EquipReliquary `json:"reliquary,omitempty"`
	Flat      EquipFlat       `json:"flat"`
}

type EquipWeapon struct {
	Level    int            `json:"level"`
	AffixMap map[string]int `json:"affixMap,omitempty"`
}

// EquipReliquary is an equipped artifact. Level counts from 1, so a +20
// artifact reports 21.
type EquipReliquary struct {
	Level int `json:"level"`
}

type EquipFlat struct {
	ItemType  string `json:"itemType"`
	RankLevel int    `json:"rankLevel"`
}

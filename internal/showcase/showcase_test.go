package showcase

import (
	"encoding/json"
	"errors"
	"testing"

	"hoyox/internal/enka"
	"hoyox/internal/refdata"
)

// countingStore records how many lookups reach the wrapped store.
type countingStore struct {
	refdata.Store
	calls int
}

func (s *countingStore) Character(id string) (refdata.Character, error) {
	s.calls++
	return s.Store.Character(id)
}

func (s *countingStore) Weapon(id string) (refdata.Weapon, error) {
	s.calls++
	return s.Store.Weapon(id)
}

func (s *countingStore) ShowcaseStats() []refdata.Prop {
	s.calls++
	return s.Store.ShowcaseStats()
}

func newStore(t *testing.T) *countingStore {
	t.Helper()
	s, err := refdata.Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	return &countingStore{Store: s}
}

func decodeResponse(t *testing.T, body string) *enka.Response {
	t.Helper()
	var resp enka.Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return &resp
}

func TestExtractWithoutShowcase(t *testing.T) {
	store := newStore(t)
	resp := decodeResponse(t, `{"uid":"1","playerInfo":{"nickname":"a"}}`)

	entries, err := Extract(resp, store)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
	if entries != nil {
		t.Fatalf("entries=%+v, want none", entries)
	}
	if store.calls != 0 {
		t.Fatalf("store was consulted %d times", store.calls)
	}
}

func TestExtractEntries(t *testing.T) {
	store := newStore(t)
	resp := decodeResponse(t, `{
		"uid": "1",
		"playerInfo": {},
		"avatarInfoList": [
			{
				"avatarId": 10000073,
				"talentIdList": [731, 732],
				"propMap": {
					"4001": {"type": 4001, "ival": "0", "val": "90"},
					"1002": {"type": 1002, "ival": "0", "val": "6"}
				},
				"fightPropMap": {"2000": 15000.5, "20": 0.65, "28": 1000, "3": 0.2},
				"equipList": [
					{"itemId": 93532, "reliquary": {"level": 21}, "flat": {"itemType": "ITEM_RELIQUARY", "rankLevel": 5}},
					{"itemId": 14511, "weapon": {"level": 90, "affixMap": {"114511": 2}}, "flat": {"itemType": "ITEM_WEAPON", "rankLevel": 5}}
				]
			},
			{
				"avatarId": 99999999,
				"propMap": {"4001": {"type": 4001, "val": "1"}}
			}
		]
	}`)

	entries, err := Extract(resp, store)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}

	nahida := entries[0]
	if nahida.Name != "Nahida" || nahida.Level != 90 || nahida.Ascension != 6 || nahida.Constellations != 2 {
		t.Fatalf("entry=%+v", nahida)
	}
	if nahida.Weapon == nil {
		t.Fatalf("weapon not extracted")
	}
	if nahida.Weapon.Name != "A Thousand Floating Dreams" || nahida.Weapon.Type != "Catalyst" || nahida.Weapon.Refinement != 3 || nahida.Weapon.Level != 90 {
		t.Fatalf("weapon=%+v", nahida.Weapon)
	}
	if nahida.Element != "Dendro" || nahida.WeaponType != "Catalyst" || nahida.Rarity != 5 {
		t.Fatalf("traits=%+v", nahida)
	}
	if len(nahida.Artifacts) != 1 || nahida.Artifacts[0] != 20 {
		t.Fatalf("artifacts=%v, want [20]", nahida.Artifacts)
	}

	// HP% (3) is not a showcase stat; the rest follow table order.
	wantStats := []string{"Max HP", "CRIT Rate", "Elemental Mastery"}
	if len(nahida.Stats) != len(wantStats) {
		t.Fatalf("stats=%+v", nahida.Stats)
	}
	for i, name := range wantStats {
		if nahida.Stats[i].Name != name {
			t.Fatalf("stats[%d]=%q, want %q", i, nahida.Stats[i].Name, name)
		}
	}
	if !nahida.Stats[1].Percent {
		t.Fatalf("CRIT Rate should be a percent stat")
	}

	unknown := entries[1]
	if unknown.Name != "Unknown (99999999)" || unknown.Level != 1 || unknown.Weapon != nil || unknown.Element != "" {
		t.Fatalf("entry=%+v", unknown)
	}
}

func TestExtractTravelerElement(t *testing.T) {
	store := newStore(t)
	resp := decodeResponse(t, `{"uid":"1","playerInfo":{},"avatarInfoList":[
		{"avatarId":10000007,"skillDepotId":704,"propMap":{"4001":{"val":"90"}}},
		{"avatarId":10000005,"skillDepotId":999,"propMap":{"4001":{"val":"70"}}}
	]}`)

	entries, err := Extract(resp, store)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if entries[0].Name != "Traveler" || entries[0].Element != "Anemo" {
		t.Fatalf("entry=%+v, want Anemo Traveler", entries[0])
	}
	// An unlisted depot falls back to the plain avatar entry.
	if entries[1].Name != "Traveler" || entries[1].Element != "" || entries[1].Rarity != 5 {
		t.Fatalf("entry=%+v, want Traveler without element", entries[1])
	}
}

func TestExtractEmptyShowcase(t *testing.T) {
	store := newStore(t)
	resp := decodeResponse(t, `{"uid":"1","playerInfo":{},"avatarInfoList":[]}`)
	entries, err := Extract(resp, store)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries=%+v", entries)
	}
}

func TestExtractBadLevel(t *testing.T) {
	store := newStore(t)
	resp := decodeResponse(t, `{"uid":"1","playerInfo":{},"avatarInfoList":[{"avatarId":10000073,"propMap":{"4001":{"val":"ninety"}}}]}`)
	if _, err := Extract(resp, store); err == nil {
		t.Fatalf("expected error for non-numeric level")
	}
}

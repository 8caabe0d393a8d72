// Package display renders profiles as console text.
package display

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hoyox/internal/player"
	"hoyox/internal/refdata"
	"hoyox/internal/showcase"
)

const rule = "========================================"

func header(w io.Writer, title string) {
	fmt.Fprintf(w, "\nShowing %s...\n%s\n", title, rule)
}

// Brief prints identity and progression only.
func Brief(w io.Writer, p *player.Player) {
	header(w, "brief info")
	fmt.Fprintf(w, "UID : %s\n", p.UID)
	fmt.Fprintf(w, "Name : %s\n", p.Name)
	fmt.Fprintf(w, "Level : %d\n", p.Level)
	fmt.Fprintf(w, "World Level : %d\n", p.WorldLevel)
	fmt.Fprintf(w, "Achievements : %d\n", p.Achievements)
}

// Detailed prints the brief fields plus signature and challenge progress.
func Detailed(w io.Writer, p *player.Player) {
	header(w, "detailed info")
	fmt.Fprintf(w, "UID : %s\n", p.UID)
	fmt.Fprintf(w, "Name : %s\n", p.Name)
	fmt.Fprintf(w, "Signature : %s\n", p.Signature)
	fmt.Fprintf(w, "Level : %d\n", p.Level)
	fmt.Fprintf(w, "World Level : %d\n", p.WorldLevel)
	fmt.Fprintf(w, "Achievements : %d\n", p.Achievements)
	fmt.Fprintf(w, "Spiral Abyss : %s\n", abyssText(p))
	fmt.Fprintf(w, "Imaginarium Theatre : %s\n", theatreText(p))
}

// Each progress line is rendered on its own; an absent record reads NoRecord.
func abyssText(p *player.Player) string {
	if p.Abyss == nil {
		return p.AbyssFloor()
	}
	return fmt.Sprintf("Floor %s Chamber %d | %d☆", p.AbyssFloor(), p.Abyss.Chamber, p.Abyss.Stars)
}

func theatreText(p *player.Player) string {
	if p.Theatre == nil {
		return p.TheatreAct()
	}
	return fmt.Sprintf("Act %s | %d☆", p.TheatreAct(), p.Theatre.Stars)
}

// ShowcaseUnavailable prints the guidance for a hidden or empty showcase.
func ShowcaseUnavailable(w io.Writer) {
	fmt.Fprintln(w, showcase.Guidance)
}

// Showcase lists showcased characters with their levels.
func Showcase(w io.Writer, entries []showcase.Entry) {
	header(w, "character showcase")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No characters in showcase.")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s | Lv. %d\n", i+1, e.Name, e.Level)
	}
}

// Builds prints each showcased character with weapon, artifacts and headline
// stats. Level and ascension are labelled through the prop table of store.
func Builds(w io.Writer, entries []showcase.Entry, store refdata.Store) {
	header(w, "detailed character builds")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No characters in showcase.")
		return
	}
	levelLabel := propLabel(store, showcase.PropLevel, "Level")
	ascensionLabel := propLabel(store, showcase.PropAscension, "Ascension")

	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s%s | %s %d (%s %d) | C%d\n",
			e.Name, characterTraits(e), levelLabel, e.Level, ascensionLabel, e.Ascension, e.Constellations)
		if e.Weapon != nil {
			fmt.Fprintf(w, "  Weapon : %s (%s) %s %d R%d\n",
				e.Weapon.Name, strings.TrimSpace(fmt.Sprintf("%d☆ %s", e.Weapon.Rarity, e.Weapon.Type)), levelLabel, e.Weapon.Level, e.Weapon.Refinement)
		} else {
			fmt.Fprintln(w, "  Weapon : None")
		}
		fmt.Fprintf(w, "  Artifacts : %s\n", artifactText(e.Artifacts))
		for _, s := range e.Stats {
			fmt.Fprintf(w, "  %s : %s\n", s.Name, statText(s))
		}
	}
}

// characterTraits is " (Dendro Catalyst, 5☆)", or empty for characters the
// tables do not know.
func characterTraits(e showcase.Entry) string {
	if e.Rarity == 0 {
		return ""
	}
	traits := strings.TrimSpace(e.Element + " " + e.WeaponType)
	if traits == "" {
		return fmt.Sprintf(" (%d☆)", e.Rarity)
	}
	return fmt.Sprintf(" (%s, %d☆)", traits, e.Rarity)
}

func artifactText(levels []int) string {
	if len(levels) == 0 {
		return "None"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = "+" + strconv.Itoa(l)
	}
	return fmt.Sprintf("%d equipped (%s)", len(levels), strings.Join(parts, " "))
}

func propLabel(store refdata.Store, id, fallback string) string {
	p, err := store.Prop(id)
	if err != nil || p.Name == "" {
		return fallback
	}
	return p.Name
}

// statText formats fight prop values: ratios as percentages, flat values rounded.
func statText(s showcase.Stat) string {
	if s.Percent {
		return strconv.FormatFloat(s.Value*100, 'f', 1, 64) + "%"
	}
	return strconv.FormatFloat(s.Value, 'f', 0, 64)
}

// Cosmetics prints the namecard and profile picture, resolved through store.
func Cosmetics(w io.Writer, p *player.Player, store refdata.Store, assetBase string) {
	header(w, "profile cosmetics")
	fmt.Fprintf(w, "Namecard : %s\n", itemText(store.Namecard, p.NameCardID, assetBase))
	if p.ProfilePictureID == 0 {
		fmt.Fprintln(w, "Profile Picture : Not set")
		return
	}
	fmt.Fprintf(w, "Profile Picture : %s\n", itemText(profilePicture(store), p.ProfilePictureID, assetBase))
}

// profilePicture looks IDs up in the picture table and then, for profiles
// that only name the avatar the picture shows, in the character table.
func profilePicture(store refdata.Store) func(string) (refdata.Item, error) {
	return func(id string) (refdata.Item, error) {
		it, err := store.ProfilePicture(id)
		if !errors.Is(err, refdata.ErrNotFound) {
			return it, err
		}
		c, cerr := store.Character(id)
		if cerr != nil {
			return refdata.Item{}, err
		}
		return refdata.Item{ID: c.ID, Name: c.Name, Icon: c.Icon}, nil
	}
}

func itemText(lookup func(string) (refdata.Item, error), id int, assetBase string) string {
	it, err := lookup(strconv.Itoa(id))
	if err != nil {
		return fmt.Sprintf("Unknown (%d)", id)
	}
	var b strings.Builder
	b.WriteString(it.Name)
	if u := refdata.IconURL(assetBase, it.Icon); u != "" {
		b.WriteString(" <" + u + ">")
	}
	return b.String()
}

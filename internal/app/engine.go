package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"hoyox/internal/enka"
	"hoyox/internal/player"
	"hoyox/internal/refdata"
	"hoyox/internal/showcase"
)

// Profile is everything one successful lookup produced.
type Profile struct {
	Player   *player.Player
	Showcase []showcase.Entry
	// ShowcaseErr is set when the showcase could not be read; the player
	// record is still usable. It wraps showcase.ErrUnavailable when the
	// showcase is hidden or empty.
	ShowcaseErr error
	FetchedAt   time.Time
	TTL         time.Duration // How long Enka considers the data fresh
}

// Engine performs a lookup: fetch, build the player, extract the showcase.
type Engine struct {
	Fetcher enka.Fetcher
	RefData refdata.Store
	infoLog *log.Logger
}

// NewEngine creates an engine. A nil infoLog discards diagnostics.
func NewEngine(fetcher enka.Fetcher, store refdata.Store, infoLog *log.Logger) (*Engine, error) {
	if fetcher == nil || store == nil {
		return nil, errors.New("cannot create Engine with nil dependencies")
	}
	if infoLog == nil {
		infoLog = log.New(io.Discard, "", 0)
	}
	return &Engine{
		Fetcher: fetcher,
		RefData: store,
		infoLog: infoLog,
	}, nil
}

// LoadProfile looks up uid. Errors from the fetch or from building the
// player are returned; the showcase never fails the lookup.
func (e *Engine) LoadProfile(ctx context.Context, uid string) (*Profile, error) {
	// 1. Fetch
	start := time.Now()
	resp, err := e.Fetcher.FetchProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	e.infoLog.Printf("fetched profile %s in %s (ttl %ds)", uid, time.Since(start).Round(time.Millisecond), resp.TTL)

	// 2. Player record
	p, err := player.FromPlayerInfo(uid, resp.PlayerInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to build player %s: %w", uid, err)
	}

	profile := &Profile{
		Player:    p,
		FetchedAt: time.Now(),
		TTL:       time.Duration(resp.TTL) * time.Second,
	}

	// 3. Showcase
	entries, err := showcase.Extract(resp, e.RefData)
	switch {
	case errors.Is(err, showcase.ErrUnavailable):
		e.infoLog.Printf("profile %s has no public showcase", uid)
		profile.ShowcaseErr = err
	case err != nil:
		e.infoLog.Printf("failed to read showcase of %s: %v", uid, err)
		profile.ShowcaseErr = err
	default:
		e.infoLog.Printf("profile %s showcases %d character(s)", uid, len(entries))
		profile.Showcase = entries
	}

	return profile, nil
}

package app

import (
	"errors"
	"fmt"
	"io"

	"hoyox/internal/display"
	"hoyox/internal/refdata"
	"hoyox/internal/showcase"
)

// Action is a display the menu can trigger for the current profile.
type Action string

const (
	ActionBrief     Action = "brief"
	ActionDetailed  Action = "detailed"
	ActionShowcase  Action = "showcase"
	ActionBuilds    Action = "builds"
	ActionCosmetics Action = "cosmetics"
	ActionHistory   Action = "history"
)

// ErrNoProfile is returned when an action needs a profile and none is loaded.
var ErrNoProfile = errors.New("no profile loaded")

// MenuExecutor renders actions against a session.
type MenuExecutor struct {
	RefData      refdata.Store
	AssetBaseURL string
}

func NewMenuExecutor(store refdata.Store, assetBaseURL string) *MenuExecutor {
	if store == nil {
		panic("refdata.Store cannot be nil for MenuExecutor")
	}
	return &MenuExecutor{
		RefData:      store,
		AssetBaseURL: assetBaseURL,
	}
}

// Execute writes the output of action for sess to w.
func (m *MenuExecutor) Execute(action Action, sess *Session, w io.Writer) error {
	if action == ActionHistory {
		m.showHistory(sess, w)
		return nil
	}

	profile, ok := sess.Profile()
	if !ok {
		return ErrNoProfile
	}

	switch action {
	case ActionBrief:
		display.Brief(w, profile.Player)
	case ActionDetailed:
		display.Detailed(w, profile.Player)
	case ActionShowcase, ActionBuilds:
		if profile.ShowcaseErr != nil {
			if errors.Is(profile.ShowcaseErr, showcase.ErrUnavailable) {
				display.ShowcaseUnavailable(w)
				return nil
			}
			return fmt.Errorf("showcase could not be read: %w", profile.ShowcaseErr)
		}
		if action == ActionShowcase {
			display.Showcase(w, profile.Showcase)
		} else {
			display.Builds(w, profile.Showcase, m.RefData)
		}
	case ActionCosmetics:
		display.Cosmetics(w, profile.Player, m.RefData, m.AssetBaseURL)
	default:
		return fmt.Errorf("unknown or unsupported menu action: '%s'", action)
	}
	return nil
}

// historyTime is the clock format of the history view.
const historyTime = "15:04:05"

func (m *MenuExecutor) showHistory(sess *Session, w io.Writer) {
	fmt.Fprintf(w, "\nRecently looked up UIDs (session started %s):\n", sess.CreatedAt.Format(historyTime))
	if len(sess.Recent) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i := len(sess.Recent) - 1; i >= 0; i-- {
		r := sess.Recent[i]
		fmt.Fprintf(w, "  %s  fetched %s", r.UID, r.FetchedAt.Format(historyTime))
		if r.TTL > 0 {
			fmt.Fprintf(w, ", refreshable after %s", r.FetchedAt.Add(r.TTL).Format(historyTime))
		}
		fmt.Fprintln(w)
	}
}

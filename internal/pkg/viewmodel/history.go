package viewmodel

import "github.com/ManuelReschke/RechargeFox/internal/pkg/recharge"

// HistoryState is the state of the history view.
type HistoryState string

const (
	HistoryUnauthenticated HistoryState = "unauthenticated"
	HistoryLoading         HistoryState = "loading"
	HistoryEmpty           HistoryState = "empty"
	HistoryPopulated       HistoryState = "populated"
)

// HistoryPage is everything the history view renders.
type HistoryPage struct {
	Layout
	State   HistoryState
	Entries []recharge.HistoryEntry
}

// LoadedHistoryState picks the state after a fetch settled.
func LoadedHistoryState(entries []recharge.HistoryEntry) HistoryState {
	if len(entries) == 0 {
		return HistoryEmpty
	}
	return HistoryPopulated
}

func (p HistoryPage) IsUnauthenticated() bool { return p.State == HistoryUnauthenticated }
func (p HistoryPage) IsLoading() bool         { return p.State == HistoryLoading }
func (p HistoryPage) IsEmpty() bool           { return p.State == HistoryEmpty }
func (p HistoryPage) IsPopulated() bool       { return p.State == HistoryPopulated }

package session

import (
	"math"
	"sort"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// unranked sorts after every real rank
const unranked = math.MaxInt

// ReconcileGuildOrder returns a permutation of guilds in the order given by
// pref. Guilds missing from the preference keep their relative order after
// all ranked guilds. When an id appears more than once its first occurrence
// decides the rank. A nil preference (settings could not be fetched) leaves
// the order untouched. The input slice is not modified.
func ReconcileGuildOrder(guilds []protocol.Guild, pref *protocol.OrderingPreference) []protocol.Guild {
	ordered := make([]protocol.Guild, len(guilds))
	copy(ordered, guilds)
	if pref == nil {
		return ordered
	}

	ids := pref.OrderedGuildIDs()
	if len(ids) == 0 {
		return ordered
	}

	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}
	rankOf := func(id string) int {
		if r, ok := rank[id]; ok {
			return r
		}
		return unranked
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return rankOf(ordered[i].ID) < rankOf(ordered[j].ID)
	})
	return ordered
}

// VisibleGuilds drops guilds with blank names. Call it after reconciling so
// hidden guilds still count when ranks are computed.
func VisibleGuilds(guilds []protocol.Guild) []protocol.Guild {
	visible := make([]protocol.Guild, 0, len(guilds))
	for _, g := range guilds {
		if g.Valid() {
			visible = append(visible, g)
		}
	}
	return visible
}

package protocol

import "fmt"

// Presence is the user's visible availability
type Presence int

const (
	PresenceOnline Presence = iota
	PresenceIdle
	PresenceDoNotDisturb
	PresenceInvisible
)

// Presences lists every presence in menu order
var Presences = []Presence{
	PresenceOnline,
	PresenceIdle,
	PresenceDoNotDisturb,
	PresenceInvisible,
}

// RGB is a colour triple with components in [0, 1]
type RGB [3]float32

type presenceInfo struct {
	token string
	label string
	color RGB
}

var presenceTable = map[Presence]presenceInfo{
	PresenceOnline:       {token: "online", label: "Online", color: RGB{0.3, 0.8, 0.3}},
	PresenceIdle:         {token: "idle", label: "Idle", color: RGB{1.0, 0.7, 0.2}},
	PresenceDoNotDisturb: {token: "dnd", label: "Do Not Disturb", color: RGB{0.9, 0.3, 0.3}},
	PresenceInvisible:    {token: "invisible", label: "Invisible", color: RGB{0.5, 0.5, 0.5}},
}

// Token returns the wire value sent to the platform
func (p Presence) Token() string {
	return presenceTable[p].token
}

// Label returns the human readable name
func (p Presence) Label() string {
	return presenceTable[p].label
}

// Color returns the display colour
func (p Presence) Color() RGB {
	return presenceTable[p].color
}

// String returns the wire token
func (p Presence) String() string {
	if info, ok := presenceTable[p]; ok {
		return info.token
	}
	return fmt.Sprintf("Presence(%d)", int(p))
}

// Hex returns the colour as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ParsePresence looks a presence up by its wire token
func ParsePresence(token string) (Presence, error) {
	for p, info := range presenceTable {
		if info.token == token {
			return p, nil
		}
	}
	return PresenceOnline, fmt.Errorf("unknown presence %q", token)
}

package prefs

// DefaultIcon is rendered when no preference was ever saved for a wallet.
const DefaultIcon = "wallet"

// icons is the closed set of wallet icon tags the picker offers.
var icons = map[string]bool{
	"wallet":    true,
	"travel":    true,
	"home":      true,
	"car":       true,
	"gift":      true,
	"education": true,
	"health":    true,
	"savings":   true,
}

// IsValidIcon checks membership in the icon picker set
func IsValidIcon(icon string) bool {
	return icons[icon]
}

// Icons returns the icon tags offered by the picker
func Icons() []string {
	out := make([]string, 0, len(icons))
	for icon := range icons {
		out = append(out, icon)
	}
	return out
}

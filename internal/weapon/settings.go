package weapon

// Disabled marks an optional tuning value as unused
const Disabled = -1

// Settings collects the tuning values of a weapon before construction.
// Setters store values verbatim and return the updated settings, so a
// definition reads as one chained expression:
//
//	weapon.NewSettings(20).AmmoSize(30).ClipSize(8)
type Settings struct {
	primaryCooldown   int
	secondaryCooldown int
	reloadCooldown    int
	clipSize          int
	ammoSize          int
}

// NewSettings starts settings with the mandatory primary cooldown, in ticks.
// Every optional value starts as Disabled.
func NewSettings(primaryCooldown int) Settings {
	return Settings{
		primaryCooldown:   primaryCooldown,
		secondaryCooldown: Disabled,
		reloadCooldown:    Disabled,
		clipSize:          Disabled,
		ammoSize:          Disabled,
	}
}

// SecondaryCooldown sets the ticks between secondary actions
func (s Settings) SecondaryCooldown(ticks int) Settings {
	s.secondaryCooldown = ticks
	return s
}

// ReloadCooldown sets how many ticks a reload takes
func (s Settings) ReloadCooldown(ticks int) Settings {
	s.reloadCooldown = ticks
	return s
}

// ClipSize sets how many rounds are loaded at once
func (s Settings) ClipSize(size int) Settings {
	s.clipSize = size
	return s
}

// AmmoSize sets the total ammo pool
func (s Settings) AmmoSize(size int) Settings {
	s.ammoSize = size
	return s
}

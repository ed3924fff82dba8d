package events

// Event type constants
const (
	// Inventory Events
	EventTypeWeaponGiven EventType = "weapon_given"

	// Action Events
	EventTypeBeforePrimary   EventType = "before_primary"
	EventTypeAfterPrimary    EventType = "after_primary"
	EventTypeBeforeSecondary EventType = "before_secondary"
	EventTypeAfterSecondary  EventType = "after_secondary"

	// Reload Events
	EventTypeReloadStarted  EventType = "reload_started"
	EventTypeReloadFinished EventType = "reload_finished"
	EventTypeOutOfAmmo      EventType = "out_of_ammo"
)

package model

// DarkMode is the display theme preference.
type DarkMode string

// Theme constants.
const (
	DarkModeSystem DarkMode = "system"
	DarkModeLight  DarkMode = "light"
	DarkModeDark   DarkMode = "dark"
)

// DefaultAdjustmentWindowDays is the claim window applied until the user
// configures one.
const DefaultAdjustmentWindowDays = 30

// AppSettings is the single process-wide configuration record.
type AppSettings struct {
	AdjustmentWindowDays int      `json:"adjustmentWindowDays"`
	DarkMode             DarkMode `json:"darkMode"`
	CostcoSyncEnabled    bool     `json:"costcoSyncEnabled"`
}

// DefaultSettings returns the settings applied to a fresh install, and the
// fallback for fields missing from an imported snapshot.
func DefaultSettings() AppSettings {
	return AppSettings{
		AdjustmentWindowDays: DefaultAdjustmentWindowDays,
		DarkMode:             DarkModeSystem,
		CostcoSyncEnabled:    false,
	}
}

// SettingsPatch is a partial update to the settings record.
type SettingsPatch struct {
	AdjustmentWindowDays *int
	DarkMode             *DarkMode
	CostcoSyncEnabled    *bool
}

// Apply merges the patch into a copy of the settings and returns it.
func (p SettingsPatch) Apply(s AppSettings) AppSettings {
	if p.AdjustmentWindowDays != nil {
		s.AdjustmentWindowDays = *p.AdjustmentWindowDays
	}
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.CostcoSyncEnabled != nil {
		s.CostcoSyncEnabled = *p.CostcoSyncEnabled
	}
	return s
}

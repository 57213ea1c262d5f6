package constants

const (
	// Persisted client state keys
	SettingUserID  = "user_id"
	SettingIsAdmin = "is_admin"
	SettingLang    = "lang"
	SettingAPIURL  = "api_url"

	DefaultLang = "en-US"
)

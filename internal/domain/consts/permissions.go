package consts

// Permissions for the files and directories ryt creates.
const (
	// ** World Readable **
	PermsGenericDir = 0o755
	PermsLogFile    = 0o644

	// ** Private **
	PermsConfigDir  = 0o750
	PermsConfigFile = 0o600
	PermsCookieFile = 0o600 // Exported browser cookies
)

package model

// SettingServerStatus is the settings key of the order acceptance flag.
const SettingServerStatus = "server_status"

// ServerStatus advises clients whether purchases are accepted.
type ServerStatus string

const (
	ServerStatusOpen   ServerStatus = "open"
	ServerStatusClosed ServerStatus = "closed"
)

// DefaultServerStatus is reported when the setting row is missing.
const DefaultServerStatus = ServerStatusOpen

// Valid reports whether status is open or closed.
func (s ServerStatus) Valid() bool {
	return s == ServerStatusOpen || s == ServerStatusClosed
}

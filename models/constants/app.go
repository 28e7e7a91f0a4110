package constants

const (
	ExternalName = "GetRich Notifier"
	InternalName = "getrich-notifier"
	Version      = "1.0.0"
)

package model

// ConfigError reports invalid configuration or parameters. It is raised
// synchronously to the caller; it never represents a failed search.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

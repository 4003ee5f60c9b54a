package model

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion  string `json:"app_version"`
	DbVersion   string `json:"db_version"`
	QuoteSource string `json:"quote_source"`
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

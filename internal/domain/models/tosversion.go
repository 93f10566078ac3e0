package models

// VersionInfo describes the Terms of Service revision currently in force.
// Dates are ISO 8601 calendar dates (YYYY-MM-DD).
type VersionInfo struct {
	Version       string `json:"version"`
	EffectiveDate string `json:"effectiveDate"`
	LastUpdated   string `json:"lastUpdated"`
}

// CurrentTermsVersion is the revision served by /tos/version.
// It is fixed for the lifetime of the process.
var CurrentTermsVersion = VersionInfo{
	Version:       "2.1.0",
	EffectiveDate: "2025-01-15",
	LastUpdated:   "2025-01-10",
}

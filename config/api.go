package config

// GetAuthSkipperPaths returns admin paths that skip authentication
func GetAuthSkipperPaths() []string {
	return []string{"/api/admin/ping"}
}

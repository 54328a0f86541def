package utils

import "strings"

// RemoveEmptyStrings trims every entry and drops the ones left blank.
func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}

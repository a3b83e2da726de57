package azuredevops

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// sortVersionsDescending sorts tag names in descending version order
// (newest first). Tags that are not valid semantic versions fall back to
// reverse string order.
func sortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		v1 := normalizeVersion(versions[i])
		v2 := normalizeVersion(versions[j])

		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}
		return versions[i] > versions[j]
	})
}

// normalizeVersion ensures the 'v' prefix semver comparison expects.
func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

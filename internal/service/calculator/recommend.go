package ridecalc

import "strings"

// Recommend returns the destination of the first area contained in the pickup name.
func (e *Engine) Recommend(pickupName string) (string, bool) {
	name := strings.ToLower(pickupName)
	for _, r := range e.tables.Recommendations {
		if strings.Contains(name, strings.ToLower(r.Area)) {
			return r.Destination, true
		}
	}
	return "", false
}

package utils

import "strconv"

func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0)
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// EpochSeconds coerces a decoded JSON claim value into epoch seconds.
// Providers encode exp as an integer, a float, or a numeric string.
func EpochSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			if f, ferr := strconv.ParseFloat(n, 64); ferr == nil {
				return int64(f), true
			}
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

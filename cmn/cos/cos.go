// Package cos ("common os/small utils") holds the handful of helpers
// that don't deserve their own package.
package cos

import jsoniter "github.com/json-iterator/go"

// MinI returns the smaller of two ints.
func MinI(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MustMarshal marshals v to JSON and panics on error. Used by
// cmd/client to print read results, where a marshal failure means a
// programming error, not a recoverable condition.
func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

//go:build !debug

package debug

func assertImpl(_ bool, _ ...any) {}

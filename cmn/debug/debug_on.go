//go:build debug

package debug

import "fmt"

func assertImpl(cond bool, args ...any) {
	if !cond {
		panic(fmt.Sprintln(append([]any{"assertion failed:"}, args...)...))
	}
}

package utils

import (
	"bytes"
	"runtime"
)

// Stack returns the goroutine stack without its first skip frames
func Stack(skip int) []byte {
	buf := make([]byte, 8192)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, len(buf)*2)
	}

	// first line is the goroutine header, then each frame takes two lines
	lines := bytes.Split(buf, []byte("\n"))
	if len(lines) == 0 {
		return buf
	}
	drop := 1 + 2*skip
	if drop >= len(lines) {
		return lines[0]
	}
	res := append([][]byte{lines[0]}, lines[drop:]...)
	return bytes.Join(res, []byte("\n"))
}

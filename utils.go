package vkt

import (
	"fmt"
	"unsafe"
)

var end = "\x00"
var endChar byte = '\x00'

// waitForever is the timeout used for image acquisition and fence waits
const waitForever = ^uint64(0)

// IDestructable is implemented by every object owning a native handle
type IDestructable interface {
	Destroy()
}

// ToBytes will take an unsafe.Pointer and length in bytes and convert it
// to a byte slice
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	return unsafe.Slice((*byte)(ptr), lenInBytes)
}

func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	ret := make([]string, len(list))
	for i := range list {
		ret[i] = safeString(list[i])
	}
	return ret
}

// handleString formats a native handle for logging
func handleString(h interface{}) string {
	return fmt.Sprintf("%v", h)
}

package common

import "fmt"

func BytesCopy(bytes []byte) []byte {
	copyBytes := make([]byte, len(bytes))
	copy(copyBytes, bytes)
	return copyBytes
}

func panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

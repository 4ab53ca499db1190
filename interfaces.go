package vkt

// BufferObject is data that can be copied into a Buffer
type BufferObject interface {
	Bytes() []byte
}

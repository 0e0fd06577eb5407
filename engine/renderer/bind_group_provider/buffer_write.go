package bind_group_provider

// BufferWrite describes a single staged GPU buffer write targeting a
// specific binding on a BindGroupProvider at a given byte offset. Writes are
// collected per frame and flushed in one batch via Renderer.WriteBuffers.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

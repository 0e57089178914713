package bind_group_provider

// BufferWrite describes a single uniform write targeting a binding on a
// BindGroupProvider. The renderer batches these per frame and flushes them
// before encoding the render pass.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Package imaging implements the image transformation engine behind the MCP
// server: decoding, metadata, scaling, quarter-turn rotation and encoding of
// a single raster image.
//
// A Processor carries the shared configuration (working-memory floor,
// resampler, default JPEG quality) and creates Image handles from a file path
// or from bytes. Each Image owns exactly one pixel buffer at a time.
//
// # Formats
//
// Only JPEG and PNG are read from paths and written back. Byte input may be
// any format registered with the image package (JPEG, PNG, GIF, BMP, TIFF,
// WebP), but such handles are always treated as PNG until SetFormat says
// otherwise.
//
// # Buffer Lifecycle
//
// Every transform builds a new buffer, swaps it in, and frees the previous
// one before returning. A failed transform never swaps, so the handle keeps
// its previous pixels. Release frees the buffer explicitly; a released
// handle rejects every further operation with KindInvalidState.
//
// # Working Memory
//
// Before resampling, the Processor asks its MemoryLimiter to raise the
// budget to the configured floor (50 MiB by default) if it is lower. A
// failed raise is logged and ignored. The destination buffer is then
// checked against the effective budget and refused with KindOutOfMemory
// when it would not fit.
//
// # Error Handling
//
// All operations return *Error values carrying a Kind. Use IsKind or KindOf
// to branch on them.
package imaging

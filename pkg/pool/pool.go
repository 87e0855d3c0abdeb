// Package pool provides object pooling for gridgrep to reduce allocations.
//
// Object pooling reuses allocated objects instead of creating new ones,
// reducing GC pressure when many searches run back to back.
//
// Pooled objects:
// - Byte buffers (record arenas for output formatting)
// - Byte-slice vectors (batches for vectored writes)
//
// Usage:
//
//	// Get a buffer from the pool
//	buf := pool.GetByteBuffer()
//	defer pool.PutByteBuffer(buf)
//
//	// Use the buffer...
//	buf = append(buf, record...)
package pool

import (
	"sync"
)

// PoolConfig configures object pooling behavior.
//
// Object pooling reduces memory allocations by reusing objects instead of
// creating new ones. For gridgrep this matters when a caller runs many
// reports in sequence, where every report formats thousands of small records.
//
// Fields:
//   - Enabled: Controls whether pooling is active (disable for debugging)
//   - MaxSize: Maximum capacity for pooled vectors (prevents memory leaks)
//
// Example:
//
//	config := pool.PoolConfig{
//		Enabled: true,
//		MaxSize: 1000, // Keep up to 1000 elements per pooled vector
//	}
//	pool.Configure(config)
//
// ELI12:
//
// Think of object pooling like a library's book return system:
//   - Instead of buying new books every time (allocating memory),
//     you return books to the library (pool) when done
//   - The next person can check out the same book (reuse object)
//   - The library only keeps so many books (MaxSize limit)
//   - This saves money (reduces garbage collection) and is faster!
type PoolConfig struct {
	// Enabled controls whether pooling is active
	Enabled bool

	// MaxSize limits maximum elements kept in pooled vectors
	MaxSize int
}

var globalConfig = PoolConfig{
	Enabled: true,
	MaxSize: 1000,
}

// Configure sets global pool configuration.
//
// This function should be called once during application initialization,
// before any pooled objects are allocated. Calling it multiple times will
// reinitialize all pools, which may cause temporary allocation spikes.
//
// Parameters:
//   - config: Pool configuration with Enabled and MaxSize settings
//
// Thread Safety:
//   Not thread-safe. Call only during initialization.
func Configure(config PoolConfig) {
	globalConfig = config

	// Reinitialize pools to ensure New functions are set correctly
	initPools()
}

// initPools reinitializes all pools with their New functions.
func initPools() {
	byteBufferPool = sync.Pool{
		New: func() any {
			return make([]byte, 0, 1024)
		},
	}
	vecSlicePool = sync.Pool{
		New: func() any {
			return make([][]byte, 0, 64)
		},
	}
}

// IsEnabled returns whether pooling is enabled.
//
// Returns:
//   - true if pooling is enabled (objects are reused)
//   - false if pooling is disabled (objects are allocated fresh)
func IsEnabled() bool {
	return globalConfig.Enabled
}

// =============================================================================
// Byte Buffer Pool (record arenas)
// =============================================================================

var byteBufferPool = sync.Pool{
	New: func() any {
		return make([]byte, 0, 1024)
	},
}

// GetByteBuffer returns a byte buffer from the pool.
//
// The returned buffer has length 0 but pre-allocated capacity (typically 1KB).
// Use this for temporary byte operations like formatting output records or
// building binary parameter blocks. Always call PutByteBuffer when done.
//
// Returns:
//   - Empty byte slice with capacity 1024
//
// Example - Record Arena:
//
//	arena := pool.GetByteBuffer()
//	defer func() { pool.PutByteBuffer(arena) }()
//
//	arena = append(arena, source...)
//	arena = append(arena, ':')
//	arena = strconv.AppendInt(arena, int64(line), 10)
//
// Performance:
//   - Eliminates allocation for temporary buffers
//   - Pre-allocated 1KB handles small reports without growth
//   - Grows automatically if needed
//
// ELI12:
//
// Imagine you need scratch paper for homework:
//   - GetByteBuffer: Grab a blank sheet from the recycling bin (pool)
//   - Use it: Write your work on the paper (append bytes)
//   - PutByteBuffer: Erase it and put it back in the bin for next time
//   - This is faster than getting new paper from the store every time!
func GetByteBuffer() []byte {
	if !globalConfig.Enabled {
		return make([]byte, 0, 1024)
	}
	return byteBufferPool.Get().([]byte)[:0]
}

// PutByteBuffer returns a byte buffer to the pool for reuse.
//
// The buffer is cleared (length reset to 0) before being pooled. Very large
// buffers (capacity > 1MB) are not pooled to prevent memory leaks.
//
// Parameters:
//   - buf: The buffer to return to the pool (will be cleared)
//
// Memory Safety:
//   - Buffer is cleared (length set to 0)
//   - Capacity is preserved for reuse
//   - Don't use the buffer after calling PutByteBuffer
//   - Buffers >1MB are discarded, not pooled
func PutByteBuffer(buf []byte) {
	if !globalConfig.Enabled {
		return
	}
	if cap(buf) > 1024*1024 { // Don't pool huge buffers (>1MB)
		return
	}
	byteBufferPool.Put(buf[:0])
}

// =============================================================================
// Byte-Slice Vector Pool (vectored write batches)
// =============================================================================

var vecSlicePool = sync.Pool{
	New: func() any {
		return make([][]byte, 0, 64)
	},
}

// GetVecSlice returns a byte-slice vector from the pool.
//
// The returned vector has length 0 but pre-allocated capacity (typically 64
// elements). Use this to collect per-record byte slices for a vectored write.
// Always call PutVecSlice when done.
//
// Returns:
//   - Empty [][]byte with capacity 64
//
// Example - Batched Output:
//
//	vec := pool.GetVecSlice()
//	defer func() { pool.PutVecSlice(vec) }()
//
//	for _, m := range matches {
//		vec = append(vec, formatRecord(m))
//	}
//	writer.WriteVec(vec)
//
// Performance:
//   - Eliminates allocation for the vector header and backing array
//   - One vector serves an entire report
func GetVecSlice() [][]byte {
	if !globalConfig.Enabled {
		return make([][]byte, 0, 64)
	}
	return vecSlicePool.Get().([][]byte)[:0]
}

// PutVecSlice returns a byte-slice vector to the pool for reuse.
//
// The vector is cleared (all element references set to nil) before being
// pooled so the record buffers it pointed at can be collected. Vectors with
// capacity > MaxSize are not pooled to prevent memory leaks.
//
// Parameters:
//   - vec: The vector to return to the pool (will be cleared)
//
// Memory Safety:
//   - All element references are set to nil
//   - Allows GC to collect the record buffers
//   - Don't use the vector after calling PutVecSlice
func PutVecSlice(vec [][]byte) {
	if !globalConfig.Enabled {
		return
	}
	if cap(vec) > globalConfig.MaxSize {
		return
	}
	// Clear references to allow GC of record buffers
	for i := range vec {
		vec[i] = nil
	}
	vecSlicePool.Put(vec[:0])
}

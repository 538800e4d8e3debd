package preview

import (
	"encoding/base64"
	"sync"
)

// ChunkSize is the largest base64 payload per kitty escape sequence
const (
	ChunkSize    = 4096
	RawChunkSize = 3 * ChunkSize / 4 // raw bytes that encode to exactly ChunkSize
)

// base64 encoder pool to reuse encoding buffers
var base64EncoderPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, ChunkSize)
		return &buf
	},
}

// Base64Encode encodes src reusing pooled buffers
func Base64Encode(src []byte) string {
	bufPtr := base64EncoderPool.Get().(*[]byte)
	defer base64EncoderPool.Put(bufPtr)

	encodedLen := base64.StdEncoding.EncodedLen(len(src))
	if cap(*bufPtr) < encodedLen {
		*bufPtr = make([]byte, encodedLen)
	} else {
		*bufPtr = (*bufPtr)[:encodedLen]
	}
	base64.StdEncoding.Encode(*bufPtr, src)
	return string(*bufPtr)
}

// ChunkedBase64Encode splits data into chunkSize raw pieces and encodes each.
// With chunkSize a multiple of three the chunks concatenate to valid base64.
func ChunkedBase64Encode(data []byte, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = RawChunkSize
	}
	results := make([]string, 0, (len(data)+chunkSize-1)/chunkSize)
	for i := 0; i < len(data); i += chunkSize {
		end := min(i+chunkSize, len(data))
		results = append(results, Base64Encode(data[i:end]))
	}
	return results
}

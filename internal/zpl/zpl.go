package zpl

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	// StartMarker opens a label.
	StartMarker = "^XA"
	// EndMarker closes a label and is the split point.
	EndMarker = "^XZ"
	// DefaultBatchSize is the group size used when Batch gets a non-positive size.
	DefaultBatchSize = 50

	blockTerminator = EndMarker + "\n"
)

// Block is one self-terminated label, always ending in "^XZ\n".
type Block = string

// Split partitions content into self-terminated label blocks. Every block
// ends with "^XZ\n"; blank segments between delimiters are dropped.
func Split(content string) []Block {
	var blocks []Block
	for _, segment := range strings.Split(content, EndMarker) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		blocks = append(blocks, segment+blockTerminator)
	}
	return blocks
}

// Batch groups blocks into consecutive slices of at most size entries.
func Batch(blocks []Block, size int) [][]Block {
	if len(blocks) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultBatchSize
	}
	batches := make([][]Block, 0, (len(blocks)+size-1)/size)
	for start := 0; start < len(blocks); start += size {
		end := min(start+size, len(blocks))
		batches = append(batches, blocks[start:end:end])
	}
	return batches
}

// HasStartMarker reports whether content contains "^XA" anywhere.
func HasStartMarker(content string) bool {
	return strings.Contains(content, StartMarker)
}

// BlockError identifies a block that failed per-block validation.
type BlockError struct {
	Index int // 1-based
	Total int
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("label %d of %d has no %s start marker", e.Index, e.Total, StartMarker)
}

// ValidateBlocks requires every block to carry its own start marker.
func ValidateBlocks(blocks []Block) error {
	for i, block := range blocks {
		if !HasStartMarker(block) {
			return &BlockError{Index: i + 1, Total: len(blocks)}
		}
	}
	return nil
}

// Decode maps Latin-1 bytes to text, one rune per byte.
func Decode(raw []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(out), nil
}

// Encode maps text back to Latin-1 bytes. Runes above U+00FF are rejected
// so that nothing reaches the printer in a multi-byte form.
func Encode(text string) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode latin-1: %w", err)
	}
	return out, nil
}

package fs

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/expressx/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher digests the decorator-carrying lines of a source file, so edits to
// method bodies leave the digest unchanged.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashDecorators returns the xxhash of every trimmed line containing '@',
// separated by NUL bytes, formatted as 16 hex digits.
func (h *Hasher) HashDecorators(content []byte) string {
	digest := xxhash.New()

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if bytes.IndexByte(line, '@') < 0 {
			continue
		}
		_, _ = digest.Write(line)
		_, _ = digest.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", digest.Sum64())
}

// Package hasher computes the content fingerprints the dependency
// cache compares against to detect changed sources.
package hasher

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/fortuna-build/fortuna/internal/models"
	"github.com/zeebo/blake3"
)

const chunkSize = 4096

// Fingerprint hashes the file at path with BLAKE3, reading in
// fixed-size chunks, and reduces the 32-byte digest to a 32-bit
// fingerprint by taking the first four bytes big-endian. A file that
// does not exist at hashing time yields the sentinel zero fingerprint
// rather than an error, matching the planner's "missing at planning
// time" contract.
func Fingerprint(path string) (models.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	digest := h.Sum(nil)
	return models.Fingerprint(binary.BigEndian.Uint32(digest[0:4])), nil
}

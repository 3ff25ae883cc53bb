package pad

import (
	"fmt"
	"os"
)

// NTAG215 dump sizes seen in the wild: the bare tag and the tag plus the
// trailing signature/keys some dump tools append.
var amiiboDumpSizes = map[int]bool{540: true, 572: true}

// LoadAmiibo reads an amiibo tag dump from path and validates its size.
func LoadAmiibo(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !amiiboDumpSizes[len(data)] {
		return nil, fmt.Errorf("%s: %d bytes is not an amiibo dump (expected 540 or 572)", path, len(data))
	}
	return data, nil
}

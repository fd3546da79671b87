package response

import (
	"crypto/sha1"
	"fmt"
)

// ETagFor computes a strong entity tag for the given content.
func ETagFor(data []byte) string {
	return fmt.Sprintf(`"%x"`, sha1.Sum(data))
}

package fill

import (
	"crypto/rand"
	"encoding/binary"
	"path"
	"strconv"
	"strings"
	"time"
)

const uploadPrefix = "uploads"

// UploadPath builds the blob path for a file answer: uploads/<questionID>/
// followed by a collision-resistant name derived from the current time and
// a random suffix, preserving the original extension. Scoping by question
// id keeps concurrent uploads for distinct questions from interfering.
func UploadPath(questionID, filename string) string {
	return path.Join(uploadPrefix, questionID, uploadName(filename))
}

func uploadName(filename string) string {
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	name := stamp + randomSuffix()
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && ext != "." {
		name += ext
	}
	return name
}

func randomSuffix() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fall back to a second clock reading; the timestamp component
		// still keeps names unique across uploads.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 36)
}

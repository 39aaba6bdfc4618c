package cache

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/provider"
)

// Entry is a cached image.
// Entries are immutable once published, refreshes replace them wholesale.
type Entry struct {
	Data        []byte
	ContentType string
	FetchedAt   time.Time
}

// ErrInvalidEntry is returned when decoding malformed entry data
var ErrInvalidEntry = errors.New("invalid cache entry")

const entryVersion = 1

// Image returns the entry as a provider image.
// The data is shared, callers must treat it as read-only.
func (e *Entry) Image() *provider.Image {
	return &provider.Image{
		Data:        e.Data,
		ContentType: e.ContentType,
	}
}

// MarshalBinary encodes the entry for storage in a byte-oriented backend.
// Layout: version byte, fetch timestamp as big-endian unix nanoseconds,
// big-endian content-type length, content-type, image data.
func (e *Entry) MarshalBinary() ([]byte, error) {
	if len(e.ContentType) > 1<<16-1 {
		return nil, ErrInvalidEntry
	}

	buf := make([]byte, 0, 1+8+2+len(e.ContentType)+len(e.Data))
	buf = append(buf, entryVersion)
	buf = binary.BigEndian.AppendUint64(buf, uint64(e.FetchedAt.UnixNano()))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(e.ContentType)))
	buf = append(buf, e.ContentType...)
	buf = append(buf, e.Data...)

	return buf, nil
}

// UnmarshalBinary decodes an entry encoded by MarshalBinary
func (e *Entry) UnmarshalBinary(data []byte) error {
	if len(data) < 1+8+2 || data[0] != entryVersion {
		return ErrInvalidEntry
	}

	fetchedAt := int64(binary.BigEndian.Uint64(data[1:9]))
	contentTypeLen := int(binary.BigEndian.Uint16(data[9:11]))

	if len(data) < 11+contentTypeLen {
		return ErrInvalidEntry
	}

	e.FetchedAt = time.Unix(0, fetchedAt)
	e.ContentType = string(data[11 : 11+contentTypeLen])
	e.Data = data[11+contentTypeLen:]

	return nil
}

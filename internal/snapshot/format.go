// Package snapshot exports the catalog to a single portable file and
// loads it back.
//
// A snapshot is a fixed header followed by an lz4 frame holding one
// msgpack-encoded Document.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
)

const (
	// Magic identifies a catalog snapshot.
	Magic = "BKSN"
	// FormatVersion is the current header version.
	FormatVersion = 1
	// FileExtension is the conventional snapshot file suffix.
	FileExtension = ".bksn"
)

// Header opens every snapshot.
type Header struct {
	Magic    [4]byte
	Version  uint8
	Flags    uint8 // reserved
	Reserved [2]byte
}

// Document is the decoded snapshot body. Records are in store order.
type Document struct {
	CreatedAt time.Time          `msgpack:"created_at"`
	Books     []*domain.Book     `msgpack:"books"`
	Magazines []*domain.Magazine `msgpack:"magazines"`
}

// WriteHeader writes the current header to w.
func WriteHeader(w io.Writer) error {
	h := Header{Version: FormatVersion}
	copy(h.Magic[:], Magic)
	return binary.Write(w, binary.LittleEndian, h)
}

// ReadHeader reads and validates a header.
func ReadHeader(r io.Reader) (*Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(h.Magic[:]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidSnapshot, string(h.Magic[:]))
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, h.Version)
	}
	return &h, nil
}

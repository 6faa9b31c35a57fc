package emu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHeader is returned by ParseHeader() for images too short to hold a
// header.
var ErrNoHeader = errors.New("emu: image too small to contain header")

// the header occupies 0x0100 to 0x014f of an image
const headerEnd = 0x014f

// Header is the part of a cartridge image header that matters when running
// the image on flat memory.
type Header struct {
	Title    string
	CartType uint8
	ROMSize  int
	Checksum uint8

	// ChecksumOK is true if Checksum matches the header bytes
	ChecksumOK bool
}

// Banked returns true if the image expects a memory bank controller. Such
// images only run correctly if they never switch banks.
func (h Header) Banked() bool {
	return h.CartType != 0x00 && h.CartType != 0x08 && h.CartType != 0x09
}

func (h Header) String() string {
	check := "ok"
	if !h.ChecksumOK {
		check = "bad"
	}
	return fmt.Sprintf("%q type=%s rom=%dKiB checksum=%s", h.Title, cartTypeString(h.CartType), h.ROMSize/1024, check)
}

// ParseHeader decodes the header of an image. The logo and global checksum
// are not checked, since test programs often leave them blank.
func ParseHeader(image []byte) (Header, error) {
	if len(image) <= headerEnd {
		return Header{}, ErrNoHeader
	}

	h := Header{
		Title:    strings.TrimRight(string(image[0x0134:0x0144]), "\x00"),
		CartType: image[0x0147],
		ROMSize:  32 * 1024 << image[0x0148],
		Checksum: image[0x014d],
	}
	if image[0x0148] > 0x08 {
		h.ROMSize = 0
	}

	var sum uint8
	for _, v := range image[0x0134:0x014d] {
		sum = sum - v - 1
	}
	h.ChecksumOK = sum == h.Checksum

	return h, nil
}

func cartTypeString(code uint8) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x08, 0x09:
		return "ROM+RAM"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x05, 0x06:
		return "MBC2"
	case 0x0f, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e:
		return "MBC5"
	}
	return fmt.Sprintf("unknown(%#02x)", code)
}

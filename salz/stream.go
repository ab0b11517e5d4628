package salz

import "encoding/binary"

// Stream types carried in the 4-byte segment header.
const (
	streamTypePlain uint8 = 0
	streamTypeSalz  uint8 = 1
	streamTypeMax         = 2
)

// headerLen is the size of the segment header: 1 byte of stream type
// packed into the top 8 bits of a little-endian uint32, 24 bits of
// body length in the rest.
const headerLen = 4

func putHeader(dst []byte, streamType uint8, bodyLen int) {
	hdr := uint32(streamType)<<24 | uint32(bodyLen)&0x00ffffff
	binary.LittleEndian.PutUint32(dst, hdr)
}

func getHeader(src []byte) (streamType uint8, bodyLen int, ok bool) {
	if len(src) < headerLen {
		return 0, 0, false
	}
	hdr := binary.LittleEndian.Uint32(src)
	streamType = uint8(hdr >> 24)
	bodyLen = int(hdr & 0x00ffffff)
	if streamType >= streamTypeMax {
		return 0, 0, false
	}
	if bodyLen > len(src)-headerLen {
		return 0, 0, false
	}
	return streamType, bodyLen, true
}

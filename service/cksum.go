package service

import (
	"io"
)

// CRC-32/CKSUM polynomial (MSB-first), as used by cksum(1)
const cksumPoly = 0x04C11DB7

var cksumTable [256]uint32

func init() {
	for i := range cksumTable {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ cksumPoly
			} else {
				crc <<= 1
			}
		}
		cksumTable[i] = crc
	}
}

// Cksum computes the POSIX cksum(1) CRC and the byte count of r.
// The metadata files publish their hashes in this format.
func Cksum(r io.Reader) (uint32, int64, error) {
	var crc uint32
	var n int64
	buf := make([]byte, 32*1024)
	for {
		m, err := r.Read(buf)
		for _, b := range buf[:m] {
			crc = crc<<8 ^ cksumTable[byte(crc>>24)^b]
		}
		n += int64(m)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, n, err
		}
	}
	// the byte count is part of the digest
	for l := n; l != 0; l >>= 8 {
		crc = crc<<8 ^ cksumTable[byte(crc>>24)^byte(l)]
	}
	return ^crc, n, nil
}

package vfs

import "hash/crc32"

// crcTable is the reflected 0xEDB88320 table; crc32.Checksum applies the
// 0xFFFFFFFF preset and final complement.
var crcTable = crc32.MakeTable(crc32.IEEE)

func Crc32(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}

// DirectoryEntryParity XORs the first 63 bytes of an encoded directory entry.
func DirectoryEntryParity(data []byte) byte {
	var x byte
	for _, b := range data[:DirectoryEntrySize-1] {
		x ^= b
	}
	return x
}

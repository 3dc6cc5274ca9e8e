package uwcolor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	markerStart = 0xFF
	markerSOI   = 0xD8
	markerEOI   = 0xD9
	markerSOS   = 0xDA
	markerAPP1  = 0xE1
	markerAPP2  = 0xE2
)

// Largest payload a length-prefixed marker segment can carry.
const maxSegmentPayload = 0xFFFF - 2

var (
	exifSig = []byte{'E', 'x', 'i', 'f', 0, 0}
	iccSig  = []byte{'I', 'C', 'C', '_', 'P', 'R', 'O', 'F', 'I', 'L', 'E', 0}
)

var errNotJPEG = errors.New("invalid jpeg")

type appSegment struct {
	marker  byte
	payload []byte
}

func isJPEG(data []byte) bool {
	return len(data) >= 2 && data[0] == markerStart && data[1] == markerSOI
}

// colorMetadata walks the JPEG header up to the first scan and returns the first EXIF segment
// followed by the ICC profile chunks in sequence order, ready to be re-inserted.
func colorMetadata(data []byte) ([]appSegment, error) {
	if len(data) < 4 || !isJPEG(data) {
		return nil, errNotJPEG
	}

	var (
		exif *appSegment
		icc  []appSegment
	)

	for pos := 2; pos+1 < len(data); {
		if data[pos] != markerStart {
			pos++
			continue
		}
		marker := data[pos+1]
		pos += 2
		switch {
		case marker == markerStart:
			// Fill byte, the marker code follows.
			pos--
			continue
		case marker == markerSOS || marker == markerEOI:
			pos = len(data)
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			// TEM and RSTn have no length field.
			continue
		}

		if pos+2 > len(data) {
			return nil, fmt.Errorf("truncated marker %#x", marker)
		}
		end := pos + int(binary.BigEndian.Uint16(data[pos:]))
		if end < pos+2 || end > len(data) {
			return nil, fmt.Errorf("invalid length of marker %#x", marker)
		}
		payload := data[pos+2 : end]
		pos = end

		switch {
		case marker == markerAPP1 && exif == nil && bytes.HasPrefix(payload, exifSig):
			exif = &appSegment{marker: markerAPP1, payload: bytes.Clone(payload)}
		// "ICC_PROFILE\0" + seq + total + profile bytes.
		case marker == markerAPP2 && len(payload) >= len(iccSig)+2 && bytes.HasPrefix(payload, iccSig):
			icc = append(icc, appSegment{marker: markerAPP2, payload: bytes.Clone(payload)})
		}
	}

	sort.SliceStable(icc, func(i, j int) bool {
		return icc[i].payload[len(iccSig)] < icc[j].payload[len(iccSig)]
	})

	segs := make([]appSegment, 0, len(icc)+1)
	if exif != nil {
		segs = append(segs, *exif)
	}
	return append(segs, icc...), nil
}

// insertAppSegments places segs right after SOI.
func insertAppSegments(data []byte, segs []appSegment) ([]byte, error) {
	if !isJPEG(data) {
		return nil, errNotJPEG
	}
	if len(segs) == 0 {
		return data, nil
	}

	size := len(data)
	for _, s := range segs {
		if len(s.payload) > maxSegmentPayload {
			return nil, fmt.Errorf("marker %#x payload of %d bytes does not fit a segment", s.marker, len(s.payload))
		}
		size += 4 + len(s.payload)
	}

	out := make([]byte, 0, size)
	out = append(out, markerStart, markerSOI)
	for _, s := range segs {
		out = append(out, markerStart, s.marker)
		out = binary.BigEndian.AppendUint16(out, uint16(len(s.payload)+2))
		out = append(out, s.payload...)
	}
	return append(out, data[2:]...), nil
}

package uwcolor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAppSegments_afterSOI(t *testing.T) {
	base := []byte{markerStart, markerSOI, markerStart, 0xDB, 0x00, 0x03, 0x01, markerStart, markerEOI}
	out, err := insertAppSegments(base, []appSegment{{marker: markerAPP1, payload: []byte("Exif\x00\x00x")}})
	require.NoError(t, err)

	want := append([]byte{markerStart, markerSOI, markerStart, markerAPP1, 0x00, 0x09}, []byte("Exif\x00\x00x")...)
	want = append(want, base[2:]...)
	assert.Equal(t, want, out)

	out, err = insertAppSegments(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, out)

	_, err = insertAppSegments([]byte{0x00, 0x01}, nil)
	assert.ErrorIs(t, err, errNotJPEG)
}

func TestInsertAppSegments_oversized(t *testing.T) {
	base := []byte{markerStart, markerSOI, markerStart, markerEOI}

	_, err := insertAppSegments(base, []appSegment{{marker: markerAPP2, payload: make([]byte, maxSegmentPayload+1)}})
	assert.Error(t, err)

	out, err := insertAppSegments(base, []appSegment{{marker: markerAPP2, payload: make([]byte, maxSegmentPayload)}})
	require.NoError(t, err)
	assert.Equal(t, []byte{markerStart, markerAPP2, 0xFF, 0xFF}, out[2:6])
	assert.Len(t, out, len(base)+4+maxSegmentPayload)
}

func TestColorMetadata_skipsOtherSegments(t *testing.T) {
	xmp := append([]byte("http://ns.adobe.com/xap/1.0/\x00"), "<x/>"...)
	icc := append(append([]byte(nil), iccSig...), 1, 1, 'p')
	base := []byte{markerStart, markerSOI, markerStart, markerSOS, 0x00, 0x02, markerStart, markerEOI}
	data, err := insertAppSegments(base, []appSegment{
		{marker: markerAPP1, payload: xmp},
		{marker: markerAPP2, payload: []byte("MPF\x00")},
		{marker: markerAPP2, payload: icc},
	})
	require.NoError(t, err)

	segs, err := colorMetadata(data)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, byte(markerAPP2), segs[0].marker)
	assert.Equal(t, icc, segs[0].payload)
}

func TestColorMetadata_firstExifOnly(t *testing.T) {
	second := append(append([]byte(nil), exifSig...), 'I', 'I')
	base := []byte{markerStart, markerSOI, markerStart, markerEOI}
	data, err := insertAppSegments(base, []appSegment{
		{marker: markerAPP2, payload: testICC2},
		{marker: markerAPP1, payload: testExif},
		{marker: markerAPP1, payload: second},
		{marker: markerAPP2, payload: testICC1},
	})
	require.NoError(t, err)

	segs, err := colorMetadata(data)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, testExif, segs[0].payload)
	assert.Equal(t, testICC1, segs[1].payload)
	assert.Equal(t, testICC2, segs[2].payload)

	// Returned payloads do not alias the input.
	segs[0].payload[0] = 'X'
	assert.True(t, bytes.Contains(data, testExif))
}

func TestColorMetadata_fillBytes(t *testing.T) {
	data := []byte{markerStart, markerSOI, markerStart, markerStart, markerStart, markerAPP1, 0x00, byte(len(testExif) + 2)}
	data = append(data, testExif...)
	data = append(data, markerStart, markerEOI)

	segs, err := colorMetadata(data)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, testExif, segs[0].payload)
}

func TestColorMetadata_stopsAtScan(t *testing.T) {
	// An APP1 after SOS is entropy-coded data territory and must be ignored.
	data := []byte{markerStart, markerSOI, markerStart, markerSOS, 0x00, 0x02}
	data = append(data, markerStart, markerAPP1, 0x00, byte(len(testExif)+2))
	data = append(data, testExif...)

	segs, err := colorMetadata(data)
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestColorMetadata_invalid(t *testing.T) {
	for name, data := range map[string][]byte{
		"not jpeg":         {0x89, 'P', 'N', 'G'},
		"short":            {markerStart, markerSOI},
		"truncated data":   {markerStart, markerSOI, markerStart, markerAPP1, 0x00, 0x40, 'E', 'x'},
		"truncated length": {markerStart, markerSOI, 0x00, markerStart, markerAPP1, 0x00},
		"length below 2":   {markerStart, markerSOI, markerStart, markerAPP1, 0x00, 0x01, 0x00},
	} {
		t.Run(name, func(t *testing.T) {
			segs, err := colorMetadata(data)
			assert.Error(t, err)
			assert.Nil(t, segs)
		})
	}
}

func TestColorMetadata_encodedRoundTrip(t *testing.T) {
	data := jpegWithMeta(t)

	segs, err := colorMetadata(data)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	stripped := bytes.Clone(data)
	// Everything between SOI and the first non-app segment is the inserted metadata.
	n := 0
	for _, s := range segs {
		n += 4 + len(s.payload)
	}
	stripped = append(stripped[:2], stripped[2+n:]...)

	again, err := insertAppSegments(stripped, segs)
	require.NoError(t, err)
	got, err := colorMetadata(again)
	require.NoError(t, err)
	assert.Equal(t, segs, got)
}

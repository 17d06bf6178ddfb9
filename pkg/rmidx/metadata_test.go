package rmidx

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_ExportMetadata_Empty_Index_Has_Zero_Size_And_No_Segments(t *testing.T) {
	t.Parallel()

	ix, err := Build[int64](nil, Identity[int64], NaturalOrder[int64], Config{MaxSegments: 64})
	require.NoError(t, err)

	md, err := ix.ExportMetadata()
	require.NoError(t, err)

	want := Metadata{Keys: []float64{}, Segments: []SegmentMetadata{}}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("empty index metadata mismatch (-want +got):\n%s", diff)
	}
}

func Test_ExportMetadata_Nil_Index_Does_Not_Panic(t *testing.T) {
	t.Parallel()

	var ix *Index[int64, int64]
	md, err := ix.ExportMetadata()
	require.NoError(t, err)
	require.Equal(t, 0, md.Size)
}

func Test_ExportMetadata_Populated_Index_Matches_Field_Contract(t *testing.T) {
	t.Parallel()

	keys := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ix, err := Build(keys, Identity[int64], NaturalOrder[int64], Config{MaxSegments: 3})
	require.NoError(t, err)

	md, err := ix.ExportMetadata()
	require.NoError(t, err)

	require.Equal(t, len(keys), md.Size)
	require.Equal(t, 3, md.NumSegments)
	require.Len(t, md.Segments, 3)
	require.Equal(t, float64(1), md.Min)
	require.Equal(t, float64(10), md.Max)
	require.Equal(t, "LINEAR", md.SegmentFinder.ModelType)
	require.Len(t, md.Keys, len(keys))

	for i, seg := range md.Segments {
		require.Equalf(t, i, seg.Index, "segment %d", i)
		require.Lessf(t, seg.StartIdx, seg.EndIdx, "segment %d", i)
		require.NotEmptyf(t, seg.ModelType, "segment %d", i)
		require.NotNilf(t, seg.Params, "segment %d", i)
	}
}

func Test_Metadata_MarshalJSON_Uses_Documented_Field_Names(t *testing.T) {
	t.Parallel()

	keys := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ix, err := Build(keys, Identity[int64], NaturalOrder[int64], Config{MaxSegments: 3})
	require.NoError(t, err)

	md, err := ix.ExportMetadata()
	require.NoError(t, err)

	raw, err := json.Marshal(md)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(raw, &asMap))
	for _, field := range []string{"size", "num_segments", "min", "max", "segment_finder", "keys", "segments"} {
		_, ok := asMap[field]
		require.Truef(t, ok, "exported document missing field %q", field)
	}

	var roundTripped Metadata
	require.NoError(t, json.Unmarshal(raw, &roundTripped))
	if diff := cmp.Diff(md, roundTripped); diff != "" {
		t.Errorf("metadata did not round-trip through JSON (-want +got):\n%s", diff)
	}
}

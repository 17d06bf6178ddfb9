package rmidx

import (
	json "github.com/goccy/go-json"
)

// Metadata is the document returned by [Index.ExportMetadata]. Its JSON
// field names are part of the export contract and must not change.
type Metadata struct {
	Size          int               `json:"size"`
	NumSegments   int               `json:"num_segments"`
	Min           float64           `json:"min"`
	Max           float64           `json:"max"`
	SegmentFinder FinderMetadata    `json:"segment_finder"`
	Keys          []float64         `json:"keys"`
	Segments      []SegmentMetadata `json:"segments"`
}

// FinderMetadata describes the top-level segment finder.
type FinderMetadata struct {
	ModelType string `json:"model_type"`
	MaxError  uint32 `json:"max_error"`
}

// SegmentMetadata describes one segment descriptor.
type SegmentMetadata struct {
	Index     int                `json:"index"`
	StartIdx  int                `json:"start_idx"`
	EndIdx    int                `json:"end_idx"`
	MinVal    float64            `json:"min_val"`
	MaxVal    float64            `json:"max_val"`
	MaxError  uint32             `json:"max_error"`
	ModelType string             `json:"model_type"`
	Params    map[string]float64 `json:"params"`
}

// ExportMetadata renders the index's structure — segment boundaries, fitted
// models, and residual certificates — for external inspection tooling. It
// never mutates the index and never fails: a nil or empty index returns a
// Metadata with size 0 and no segments. Callers that want the wire form
// marshal the result (or rely on [Metadata.MarshalJSON]).
func (ix *Index[K, R]) ExportMetadata() (Metadata, error) {
	md := Metadata{}
	n := ix.Size()
	md.Size = n
	md.NumSegments = ix.SegmentCount()

	if ix == nil || n == 0 {
		md.Keys = []float64{}
		md.Segments = []SegmentMetadata{}
		return md, nil
	}

	md.Min = float64(ix.keyMinGlobal)
	md.Max = float64(ix.keyMaxGlobal)
	md.SegmentFinder = FinderMetadata{
		ModelType: "LINEAR",
		MaxError:  ix.finder.MaxSegmentResidual(),
	}

	md.Keys = make([]float64, n)
	for i := 0; i < n; i++ {
		md.Keys[i] = float64(ix.keyFunc(ix.data[i]))
	}

	md.Segments = make([]SegmentMetadata, len(ix.segments))
	for i, s := range ix.segments {
		md.Segments[i] = SegmentMetadata{
			Index:     i,
			StartIdx:  s.IdxStart,
			EndIdx:    s.IdxEnd,
			MinVal:    float64(s.KeyMin),
			MaxVal:    float64(s.KeyMax),
			MaxError:  s.MaxResidual,
			ModelType: s.Model.Kind(),
			Params:    s.Model.Params(),
		}
	}

	return md, nil
}

// MarshalJSON encodes Metadata with goccy/go-json, so callers that pass a
// Metadata to the standard library's json.Marshal (which honours the
// json.Marshaler hook) still get the faster encoder for the keys array of
// large indexes.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type alias Metadata
	return json.Marshal(alias(m))
}

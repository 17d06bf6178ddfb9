package rmidx

import "testing"

func Test_Index_Size_And_SegmentCount_On_Nil_Receiver(t *testing.T) {
	t.Parallel()

	var ix *Index[int64, int64]
	if got := ix.Size(); got != 0 {
		t.Errorf("Size() on nil *Index = %d, want 0", got)
	}
	if got := ix.SegmentCount(); got != 0 {
		t.Errorf("SegmentCount() on nil *Index = %d, want 0", got)
	}
}

func Test_Index_Size_And_SegmentCount_Reflect_Build(t *testing.T) {
	t.Parallel()

	keys := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	ix, err := Build(keys, Identity[int64], NaturalOrder[int64], Config{MaxSegments: 3})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := ix.Size(); got != len(keys) {
		t.Errorf("Size() = %d, want %d", got, len(keys))
	}
	if got := ix.SegmentCount(); got != 3 {
		t.Errorf("SegmentCount() = %d, want 3", got)
	}
}

package rmidx

import "testing"

func Test_NopDebugLog_Get_Returns_Empty(t *testing.T) {
	t.Parallel()

	d := NewNopDebugLog()
	d.Debugf("should not be recorded: %d", 1)
	if got := d.Get(); got != "" {
		t.Errorf("Get() = %q, want empty for a no-op log", got)
	}
}

func Test_DebugLog_Records_Formatted_Lines_In_Order(t *testing.T) {
	t.Parallel()

	d := NewDebugLog(nil)
	d.Debugf("first %d", 1)
	d.Debugf("second %d", 2)

	want := "first 1\nsecond 2"
	if got := d.Get(); got != want {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func Test_DebugLog_Clear_Discards_Recorded_Lines(t *testing.T) {
	t.Parallel()

	d := NewDebugLog(nil)
	d.Debugf("line")
	d.Clear()

	if got := d.Get(); got != "" {
		t.Errorf("Get() after Clear() = %q, want empty", got)
	}
}

func Test_DebugLog_Nil_Receiver_Is_Safe(t *testing.T) {
	t.Parallel()

	var d *DebugLog
	d.Debugf("no panic please")
	if got := d.Get(); got != "" {
		t.Errorf("Get() on nil DebugLog = %q, want empty", got)
	}
	d.Clear()
}

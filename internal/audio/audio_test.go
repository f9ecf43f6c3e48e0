package audio

import "testing"

func TestPushProducesInterleavedStereoPCM(t *testing.T) {
	s := NewSink(16)
	s.Push(1.0)
	buf := make([]byte, bytesPerSample)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if n != bytesPerSample {
		t.Fatalf("Read returned %d bytes, want %d", n, bytesPerSample)
	}
	left := int16(buf[0]) | int16(buf[1])<<8
	right := int16(buf[2]) | int16(buf[3])<<8
	if left != right {
		t.Fatalf("left/right frames should match for a mono source: %d != %d", left, right)
	}
	if left <= 0 {
		t.Fatalf("full-scale positive sample should produce a positive PCM value, got %d", left)
	}
}

func TestReadPadsWithSilenceWhenBufferEmpty(t *testing.T) {
	s := NewSink(16)
	buf := make([]byte, 8)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read should always fill the caller's buffer, got %d of %d", n, len(buf))
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("buf[%d] = %d, want 0 (silence) when no samples are queued", i, b)
		}
	}
}

func TestPushClampsOutOfRangeValues(t *testing.T) {
	s := NewSink(16)
	s.Push(5.0) // out of [-1, 1]
	buf := make([]byte, bytesPerSample)
	s.Read(buf)
	left := int16(buf[0]) | int16(buf[1])<<8
	if left != 32767 {
		t.Fatalf("clamped sample = %d, want 32767", left)
	}
}

func TestPushDropsOldestSamplesWhenOverCapacity(t *testing.T) {
	s := NewSink(1) // 1 frame = bytesPerSample bytes capacity
	s.Push(0.0)
	s.Push(1.0) // should evict the first frame's bytes
	buf := make([]byte, bytesPerSample*2)
	n, _ := s.Read(buf)
	if n != len(buf) {
		t.Fatalf("Read n = %d, want %d", n, len(buf))
	}
	// Only the second pushed frame's bytes should remain (followed by
	// silence padding), since the ring buffer caps at one frame.
	left := int16(buf[0]) | int16(buf[1])<<8
	if left != 32767 {
		t.Fatalf("surviving frame = %d, want the most recently pushed sample (32767)", left)
	}
}

package input

import "testing"

func TestSetButtonAndIsPressed(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	if !c.IsPressed(ButtonA) {
		t.Fatal("A should be pressed")
	}
	if c.IsPressed(ButtonB) {
		t.Fatal("B should not be pressed")
	}
	c.SetButton(ButtonA, false)
	if c.IsPressed(ButtonA) {
		t.Fatal("A should be released")
	}
}

func TestSetButtonsArrayOrder(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, false, true, false, false, false, true})
	if !c.IsPressed(ButtonA) || !c.IsPressed(ButtonStart) || !c.IsPressed(ButtonRight) {
		t.Fatal("A, Start, Right should be pressed per the NES button order")
	}
	if c.IsPressed(ButtonB) || c.IsPressed(ButtonSelect) {
		t.Fatal("B, Select should not be pressed")
	}
}

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, true, true, true, true, true, true, true})
	c.Write(1) // strobe high
	if v := c.Read(); v != 1 {
		t.Fatalf("read while strobed should return button A (1), got %d", v)
	}
	// Subsequent reads while still strobed must keep returning A, not advance.
	if v := c.Read(); v != 1 {
		t.Fatalf("second read while still strobed should still return A, got %d", v)
	}
}

func TestStrobeFallingEdgeLatchesShiftRegister(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, true, false, false, false, false, false}) // A, Select
	c.Write(1)
	c.Write(0) // falling edge: latch

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestReadsPastEightBitsReturnOnes(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, false, false, false, false, false, false})
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	for i := 0; i < 3; i++ {
		if v := c.Read(); v != 1 {
			t.Fatalf("read past bit 8 should return 1 (open bus pull-up), got %d", v)
		}
	}
}

func TestResetClearsState(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(1)
	c.Write(0)
	c.Reset()
	if c.IsPressed(ButtonA) {
		t.Fatal("Reset should clear button state")
	}
	if c.strobe {
		t.Fatal("Reset should clear strobe")
	}
}

package bits

import "testing"

func TestWord(t *testing.T) {
	if got := Word(0x12, 0x34); got != 0x1234 {
		t.Fatalf("Word(0x12, 0x34) = %#04x, want 0x1234", got)
	}
}

func TestHiLo(t *testing.T) {
	if Hi(0xABCD) != 0xAB {
		t.Fatalf("Hi(0xABCD) = %#02x, want 0xAB", Hi(0xABCD))
	}
	if Lo(0xABCD) != 0xCD {
		t.Fatalf("Lo(0xABCD) = %#02x, want 0xCD", Lo(0xABCD))
	}
}

func TestSetClearTest(t *testing.T) {
	var v uint8
	v = Set(v, 7)
	if !Test(v, 7) {
		t.Fatal("expected bit 7 set")
	}
	v = Clear(v, 7)
	if Test(v, 7) {
		t.Fatal("expected bit 7 clear")
	}
	v = SetIf(v, 0, true)
	if v != 0x01 {
		t.Fatalf("SetIf true = %#02x, want 0x01", v)
	}
}

func TestSignedByte(t *testing.T) {
	cases := []struct {
		in   uint8
		want int8
	}{
		{0x00, 0}, {0x7F, 127}, {0x80, -128}, {0xFF, -1},
	}
	for _, c := range cases {
		if got := SignedByte(c.in); got != c.want {
			t.Errorf("SignedByte(%#02x) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAddPageCross(t *testing.T) {
	if AddPageCross(0x10F0, 0x0F) {
		t.Fatal("0x10F0 + 0x0F should not cross a page")
	}
	if !AddPageCross(0x10FF, 0x01) {
		t.Fatal("0x10FF + 0x01 should cross a page")
	}
}

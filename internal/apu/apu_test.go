package apu

import "testing"

func TestResetClearsChannelsAndEnables(t *testing.T) {
	a := New()
	a.writeChannelEnable(0x1F)
	a.pulse1.lengthCounter = 5
	a.Reset()
	if a.pulse1.lengthCounter != 0 {
		t.Fatal("Reset should clear pulse1 length counter")
	}
	for i, enabled := range a.channelEnable {
		if enabled {
			t.Fatalf("channel %d should be disabled after Reset", i)
		}
	}
}

func TestWriteChannelEnableClearsLengthCounters(t *testing.T) {
	a := New()
	a.pulse1.lengthCounter = 10
	a.noise.lengthCounter = 10
	a.writeChannelEnable(0x00) // disable everything
	if a.pulse1.lengthCounter != 0 {
		t.Fatal("disabling pulse1 should clear its length counter")
	}
	if a.noise.lengthCounter != 0 {
		t.Fatal("disabling noise should clear its length counter")
	}
}

func TestWriteChannelEnableStartsDMCWhenBytesExhausted(t *testing.T) {
	a := New()
	a.writeDMCSampleAddress(0x00) // sampleAddress = $C000
	a.writeDMCSampleLength(0x00)  // sampleLength = 1
	a.writeChannelEnable(0x10)    // enable DMC only
	if a.dmc.currentAddress != 0xC000 {
		t.Fatalf("currentAddress = %#04x, want $C000", a.dmc.currentAddress)
	}
	if a.dmc.bytesRemaining != 1 {
		t.Fatalf("bytesRemaining = %d, want 1", a.dmc.bytesRemaining)
	}
}

func TestFrameCounterFourStepFiresIRQAtEnd(t *testing.T) {
	a := New()
	a.writeFrameCounter(0x00) // 4-step mode, IRQ enabled
	for i := 0; i < 29830; i++ {
		a.stepFrameCounter()
	}
	if !a.frameIRQFlag {
		t.Fatal("4-step frame counter should assert IRQ at step 29830")
	}
}

func TestFrameCounterFiveStepNeverFiresIRQ(t *testing.T) {
	a := New()
	a.writeFrameCounter(0x80) // 5-step mode
	for i := 0; i < 40000; i++ {
		a.stepFrameCounter()
	}
	if a.frameIRQFlag {
		t.Fatal("5-step frame counter must never assert the frame IRQ")
	}
}

func TestFrameCounterIRQDisableClearsFlag(t *testing.T) {
	a := New()
	a.frameIRQFlag = true
	a.writeFrameCounter(0x40) // bit 6 set disables frame IRQ
	if a.frameIRQFlag {
		t.Fatal("setting the IRQ-inhibit bit should clear a pending frame IRQ")
	}
}

func TestReadStatusClearsFrameIRQ(t *testing.T) {
	a := New()
	a.frameIRQFlag = true
	v := a.ReadStatus()
	if v&0x40 == 0 {
		t.Fatal("status read should report frame IRQ was pending")
	}
	if a.frameIRQFlag {
		t.Fatal("reading status should clear the frame IRQ flag")
	}
}

func TestPulseTimerBelowEightIsSilenced(t *testing.T) {
	a := New()
	a.pulse1.timer = 2
	a.pulse1.lengthCounter = 10
	a.pulse1.dutyCycle = 2
	a.pulse1.sequencerPos = 1 // duty table[2][1] == 1, would be audible otherwise
	if out := a.getPulseOutput(&a.pulse1); out != 0 {
		t.Fatalf("pulse output with timer<8 should be silenced, got %d", out)
	}
}

func TestPulseLengthCounterGatesOutput(t *testing.T) {
	a := New()
	a.pulse1.timer = 100
	a.pulse1.lengthCounter = 0
	if out := a.getPulseOutput(&a.pulse1); out != 0 {
		t.Fatalf("pulse output with zero length counter should be 0, got %d", out)
	}
}

func TestTriangleOutputGatedByLinearAndLength(t *testing.T) {
	a := New()
	a.triangle.timer = 10
	a.triangle.lengthCounter = 5
	a.triangle.linearCounter = 0
	if out := a.getTriangleOutput(&a.triangle); out != 0 {
		t.Fatal("triangle with zero linear counter should be silent")
	}
	a.triangle.linearCounter = 5
	a.triangle.sequencerPos = 0
	if out := a.getTriangleOutput(&a.triangle); out != 15 {
		t.Fatalf("triangle sequence[0] = %d, want 15", out)
	}
}

func TestNoiseShiftRegisterClockedByTimer(t *testing.T) {
	a := New()
	a.noise.timerCounter = 0
	a.noise.periodIndex = 0
	before := a.noise.shiftRegister
	a.stepNoiseTimer(&a.noise)
	if a.noise.shiftRegister == before {
		t.Fatal("shift register should change after the timer reloads and clocks")
	}
}

func TestDMCSampleFetchUsesMemoryReaderAndStalls(t *testing.T) {
	a := New()
	a.SetMemoryReader(func(addr uint16) uint8 {
		if addr == 0xC000 {
			return 0xAA
		}
		return 0
	})
	a.writeDMCSampleAddress(0x00)
	a.writeDMCSampleLength(0x00)
	a.writeChannelEnable(0x10)
	a.dmc.sampleBufferEmpty = true
	a.dmc.timerCounter = 0
	a.stepDMCTimer(&a.dmc)
	if a.dmc.sampleBuffer != 0xAA {
		t.Fatalf("DMC should have fetched $AA from the wired memory reader, got %#02x", a.dmc.sampleBuffer)
	}
	if a.TakeStallCycles() != 4 {
		t.Fatal("DMC sample fetch should report a 4-cycle CPU stall")
	}
}

func TestDMCAddressWrapsAt0xFFFF(t *testing.T) {
	a := New()
	a.SetMemoryReader(func(addr uint16) uint8 { return 0 })
	a.dmc.currentAddress = 0xFFFF
	a.dmc.bytesRemaining = 2
	a.dmc.sampleBufferEmpty = true
	a.dmc.timerCounter = 0
	a.stepDMCTimer(&a.dmc)
	if a.dmc.currentAddress != 0x8000 {
		t.Fatalf("DMC address after wrap = %#04x, want $8000", a.dmc.currentAddress)
	}
}

func TestMixChannelsProducesSilenceForZeroInput(t *testing.T) {
	a := New()
	out := a.mixChannels(0, 0, 0, 0, 0)
	if out != -1.0 {
		t.Fatalf("mixer with all-zero input should map to -1.0, got %v", out)
	}
}

func TestIRQCombinesFrameAndDMC(t *testing.T) {
	a := New()
	if a.IRQ() {
		t.Fatal("IRQ should be false with nothing pending")
	}
	a.dmc.irqFlag = true
	if !a.IRQ() {
		t.Fatal("IRQ should reflect a pending DMC IRQ")
	}
}

package model

// Three consecutive headers starting at the block whose hash is Header1PrevHash. They are
// shared by tests across packages.
const (
	Header1 = "01000000" +
		"81cd02ab7e569e8bcd9317e2fe99f2de44d49ab2b8851ba4a308000000000000" +
		"e320b6c2fffc8d750423db8b1eb942ae710e951ed797f7affc8892b0f1fc122b" +
		"c7f5d74d" + "f2b9441a" + "42a14695"
	Header2 = "01000000" +
		"1dbd981fe6985776b644b173a4d0385ddc1aa2a829688d1e0000000000000000" +
		"b371c14921b20c2895ed76545c116e0ad70167c5c4952ca201f5d544a26efb53" +
		"b4f6d74d" + "f2b9441a" + "071a0c81"
	Header3 = "01000000" +
		"85afcb448a3fcde31dc78babd352d9dbde6fcb566777ea33051c000000000000" +
		"ca5b6b96fe65e1a7d50e7c3025a176472ba26d44512de86a6f3e39649330cd2f" +
		"16f7d74d" + "f2b9441a" + "8574adaf"

	Header1PrevHash = "81cd02ab7e569e8bcd9317e2fe99f2de44d49ab2b8851ba4a308000000000000"
	Header1Hash     = "1dbd981fe6985776b644b173a4d0385ddc1aa2a829688d1e0000000000000000"
	Header2Hash     = "85afcb448a3fcde31dc78babd352d9dbde6fcb566777ea33051c000000000000"
	Header3Hash     = "1e60224709df1feb2e2849b7b10570abf7d4355ba8e2f6df1211000000000000"

	// TestBits is a ceiling all three headers satisfy.
	TestBits uint32 = 0x1b0404cb
)

// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming plumbing around the tape emulator.
//
// Everything upstream of the emulator is a Source producing interleaved
// float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders build a Source from a file and are looked up in a Registry by
// format key or by file extension:
//
//	dec, err := audio.DecoderForPath(registry, "tape.wav")
//
// # Rate and layout
//
// The Resampler brings a Source to the output rate with Catmull-Rom
// interpolation. NewChannelMixer then fixes the layout to mono or stereo:
//
//	res, err := audio.NewResampler(src, 44100)
//	mixed, err := audio.NewChannelMixer(res, 2)
//
// # Blocks and sinks
//
// PCM16Reader quantises a Source into fixed-size int16 blocks, which is the
// representation the emulator works on. Processed blocks go to a Sink:
//
//	rd, err := audio.NewPCM16Reader(mixed, 1024)
//	for {
//	    block, err := rd.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // process block.Samples, then sink.WritePCM16(block.Samples)
//	}
//
// MemorySink keeps everything in memory and is handy in tests.
package audio

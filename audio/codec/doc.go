// Package codec decodes audio files into [signal.Signal] values and writes
// signals back as PCM WAV.
//
// Supported inputs are WAV (go-audio/wav), FLAC (mewkiz/flac), Ogg Vorbis
// (jfreymuth/oggvorbis) and MP3 (hajimehoshi/go-mp3). Integer PCM is scaled
// to [-1, 1) by dividing by 2^(bits-1). The format is chosen from the file
// extension for [Decode] and given explicitly for [DecodeReader].
//
// Output is always integer PCM WAV at 16, 24 or 32 bits; samples are
// clipped to [-1, 1] before quantisation.
package codec

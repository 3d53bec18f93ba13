package aws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	require.Equal(t, "audio/afra/abc.mp3", objectKey("afra", "audio/mpeg", "abc"))
	require.Equal(t, "audio/sara/abc.wav", objectKey("sara", "audio/wave", "abc"))
}

func TestAudioContentType(t *testing.T) {
	wav := append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 32)...)
	require.Equal(t, "audio/wave", audioContentType(wav))

	mp3 := append([]byte("ID3\x04\x00\x00"), make([]byte, 32)...)
	require.Equal(t, "audio/mpeg", audioContentType(mp3))

	require.Equal(t, "audio/mpeg", audioContentType([]byte("not really audio")))
}

func TestPublicURL(t *testing.T) {
	require.Equal(t,
		"https://speech.s3.eu-west-1.amazonaws.com/audio/afra/abc.mp3",
		PublicURL("speech", "eu-west-1", "audio/afra/abc.mp3"))
}

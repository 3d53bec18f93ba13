package avasho

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSpeaker(t *testing.T) {
	testCases := []struct {
		input    string
		expected Speaker
		wantErr  bool
	}{
		{input: "afra", expected: Afra},
		{input: "GARSHA", expected: Garsha},
		{input: " Bahar ", expected: Bahar},
		{input: "3", expected: Sara},
		{input: "6", expected: Bahar},
		{input: "0", wantErr: true},
		{input: "7", wantErr: true},
		{input: "nobody", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			speaker, err := ParseSpeaker(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, speaker)
		})
	}
}

func TestSpeakerCodes(t *testing.T) {
	require.Equal(t, []Speaker{1, 2, 3, 4, 5, 6}, Speakers())
	require.Equal(t, "poneh", Poneh.String())
	require.Equal(t, "speaker(9)", Speaker(9).String())
	require.False(t, Speaker(0).Valid())
}

func TestParseEstimatedProcessTime(t *testing.T) {
	seconds, err := parseEstimatedProcessTime("30 seconds")
	require.NoError(t, err)
	require.Equal(t, 30, seconds)

	seconds, err = parseEstimatedProcessTime("7")
	require.NoError(t, err)
	require.Equal(t, 7, seconds)

	for _, bad := range []string{"soon", "", "-5 seconds", "thirty seconds"} {
		_, err := parseEstimatedProcessTime(bad)
		require.ErrorAs(t, err, new(ProtocolError), bad)
	}
}

func TestToFileURL(t *testing.T) {
	require.Equal(t, "https://cdn.example.com/f.mp3", toFileURL("cdn.example.com/f.mp3"))
	require.Equal(t, "https://cdn.example.com/f.mp3", toFileURL("//cdn.example.com/f.mp3"))
	require.Equal(t, "HTTPS://cdn.example.com/f.mp3", toFileURL("HTTPS://cdn.example.com/f.mp3"))
	require.Equal(t, "", toFileURL(""))
}

func TestFlag(t *testing.T) {
	require.Equal(t, "1", flag(true))
	require.Equal(t, "0", flag(false))
}

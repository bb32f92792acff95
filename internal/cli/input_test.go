package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(reader, "Say something", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Prompt", &out)
	require.NoError(t, err)
	require.Equal(t, "partial", got)
}

func TestGetSimpleText_EOFNoInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Prompt", &out)
	require.Error(t, err)
}

func TestGetSecret_UsesStub(t *testing.T) {
	old := readSecret
	t.Cleanup(func() { readSecret = old })
	readSecret = func(fd int) ([]byte, error) {
		return []byte(" token-value \n"), nil
	}

	var out bytes.Buffer
	got, err := GetSecret("Session token", &out)
	require.NoError(t, err)
	require.Equal(t, "token-value", got)
	require.Contains(t, out.String(), "Session token")
}

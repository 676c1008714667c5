package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"celeste-saves/internal/save"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slotSave = `<?xml version="1.0" encoding="utf-8"?>
<SaveData>
  <Version>1.4.0.0</Version>
  <Name>Madeline</Name>
  <TotalStrawberries>10</TotalStrawberries>
  <TotalGoldenStrawberries>1</TotalGoldenStrawberries>
</SaveData>`

func writeSaves(t *testing.T, slots ...int) string {
	t.Helper()
	dir := t.TempDir()
	for _, slot := range slots {
		path := filepath.Join(dir, fmt.Sprintf("%d.celeste", slot))
		require.NoError(t, os.WriteFile(path, []byte(slotSave), 0600))
	}
	return dir
}

func run(t *testing.T, in string, args ...string) string {
	t.Helper()
	t.Setenv("CELESTE_PAUSE", "")
	t.Setenv("CELESTE_SAVE_DIR", "")

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(in), &out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestShowPrintsEverySave(t *testing.T) {
	dir := writeSaves(t, 0, 2)

	out := run(t, "", "--dir", dir, "--no-pause")

	assert.True(t, strings.HasPrefix(out, "Loading Save Files!\nLoaded 2 saves!\n\n"))
	assert.Contains(t, out, "Save Number: 1\n")
	assert.Contains(t, out, "Save Number: 2\n")
	assert.Contains(t, out, "Strawberries: 9+1 (10)\n")
	assert.NotContains(t, out, "Press enter")
}

func TestShowPausesBetweenSaves(t *testing.T) {
	dir := writeSaves(t, 1)

	out := run(t, "\n", "show", "--dir", dir)

	assert.Contains(t, out, "Player Name: Madeline\n")
	assert.Contains(t, out, "Press enter to continue...")
}

func TestShowWithoutSaves(t *testing.T) {
	out := run(t, "", "--dir", t.TempDir(), "--no-pause")

	assert.Equal(t, "Loading Save Files!\nLoaded 0 saves!\n\n", out)
}

func TestList(t *testing.T) {
	dir := writeSaves(t, 0, 1)

	out := run(t, "", "list", "--dir", dir)

	assert.Equal(t,
		"0\t"+filepath.Join(dir, "0.celeste")+"\n"+
			"1\t"+filepath.Join(dir, "1.celeste")+"\n",
		out)
}

func TestShowStopsAtFirstFailure(t *testing.T) {
	t.Setenv("CELESTE_PAUSE", "")
	dir := writeSaves(t, 0, 1, 2)

	var attempted []string
	extract := func(path string) (*save.Summary, error) {
		attempted = append(attempted, filepath.Base(path))
		if filepath.Base(path) == "1.celeste" {
			return nil, &save.IOError{Path: path, Err: errors.New("permission denied")}
		}
		return save.ExtractFile(path)
	}

	var out bytes.Buffer
	err := runShow(&options{dir: dir}, strings.NewReader(""), &out, true, extract)
	require.NoError(t, err)

	text := out.String()
	assert.Equal(t, []string{"0.celeste", "1.celeste"}, attempted)
	assert.Equal(t, 1, strings.Count(text, "Save Number: "))
	assert.Contains(t, text, "Save Number: 1\n")
	assert.NotContains(t, text, "Save Number: 2")
	assert.True(t, strings.HasSuffix(text, "Failed to read file!\n"))
	assert.NotContains(t, text, "permission denied")
}

func TestSetupContextCancel(t *testing.T) {
	ctx, cancel := setupContext()
	require.NoError(t, ctx.Err())

	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

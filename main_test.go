/* main_test.go
 * Contains unit tests for main.go functions
 */

package main

import (
	"bytes"
	"context"
	"dwz-bot/api/api"
	"dwz-bot/api/external"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvertStrToBool_True tests converting "true" string
func TestConvertStrToBool_True(t *testing.T) {
	result, err := convertStrToBool("true")

	assert.NoError(t, err)
	assert.True(t, result)
}

// TestConvertStrToBool_False tests converting "false" string
func TestConvertStrToBool_False(t *testing.T) {
	result, err := convertStrToBool("false")

	assert.NoError(t, err)
	assert.False(t, result)
}

// TestConvertStrToBool_CaseInsensitiveTrue tests case-insensitive "TRUE"
func TestConvertStrToBool_CaseInsensitiveTrue(t *testing.T) {
	result, err := convertStrToBool("TRUE")

	assert.NoError(t, err)
	assert.True(t, result)
}

// TestConvertStrToBool_CaseInsensitiveFalse tests case-insensitive "FALSE"
func TestConvertStrToBool_CaseInsensitiveFalse(t *testing.T) {
	result, err := convertStrToBool("FALSE")

	assert.NoError(t, err)
	assert.False(t, result)
}

// TestConvertStrToBool_MixedCase tests mixed case "TrUe"
func TestConvertStrToBool_MixedCase(t *testing.T) {
	result, err := convertStrToBool("TrUe")

	assert.NoError(t, err)
	assert.True(t, result)
}

// TestConvertStrToBool_WithWhitespace tests string with leading/trailing whitespace
func TestConvertStrToBool_WithWhitespace(t *testing.T) {
	result, err := convertStrToBool("  true  ")

	assert.NoError(t, err)
	assert.True(t, result)
}

// TestConvertStrToBool_InvalidString tests invalid boolean string
func TestConvertStrToBool_InvalidString(t *testing.T) {
	_, err := convertStrToBool("yes")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid boolean string")
}

// TestConvertStrToBool_EmptyString tests empty string
func TestConvertStrToBool_EmptyString(t *testing.T) {
	_, err := convertStrToBool("")

	assert.Error(t, err)
}

// TestConvertStrToBool_NumberString tests numeric string
func TestConvertStrToBool_NumberString(t *testing.T) {
	_, err := convertStrToBool("1")

	assert.Error(t, err)
}

// TestConvertStrToBool_OnlyWhitespace tests string with only whitespace
func TestConvertStrToBool_OnlyWhitespace(t *testing.T) {
	_, err := convertStrToBool("   ")

	assert.Error(t, err)
}

// region printReport tests

func TestPrintReport_FullReport(t *testing.T) {
	a := api.NewMockAPI(api.NewMockProvider().AddPlayer("Mustermann,Max", api.SampleCard("100", "Mustermann, Max", "SK Musterstadt")), api.NewMockStore())
	report, err := a.PlayerReportByID(context.Background(), "100")
	require.NoError(t, err)

	var out bytes.Buffer
	printReport(&out, report)

	assert.Contains(t, out.String(), "Mustermann, Max (100)")
	assert.Contains(t, out.String(), "Club: SK Musterstadt")
	assert.Contains(t, out.String(), "Rating: 1500 -> 1550 (+50)")
	assert.Contains(t, out.String(), "points: 7.5 (68.2%)")
	assert.Contains(t, out.String(), "  Start                1500")
	assert.Contains(t, out.String(), "  Bezirksliga Nord     1550")
}

func TestPrintReport_NoHistory(t *testing.T) {
	report := &api.PlayerReport{Player: external.PlayerCard{ID: "400", Name: "Neu, Lina"}}

	var out bytes.Buffer
	printReport(&out, report)

	assert.Equal(t, "Neu, Lina (400)\nDWZ: -\n", out.String())
}

// endregion

// region command tests

func TestRootCmd_Subcommands(t *testing.T) {
	rootCmd := newRootCmd()

	lookup, _, err := rootCmd.Find([]string{"lookup"})
	require.NoError(t, err)
	assert.Equal(t, "lookup", lookup.Name())
	assert.NotNil(t, lookup.Flags().Lookup("chart"))

	botCmd, _, err := rootCmd.Find([]string{"bot"})
	require.NoError(t, err)
	assert.NotNil(t, botCmd.Flags().Lookup("test"))
}

func TestLookupCmd_RequiresName(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"lookup"})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)

	err := rootCmd.Execute()

	assert.Error(t, err)
}

// endregion

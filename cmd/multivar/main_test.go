package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/multivar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOperationCommands(t *testing.T) {
	out, err := execute(t, "gradient", "--expr", "x^2*y + y^3", "--at", "1,2", "-o", "json")
	require.NoError(t, err)

	var resp struct {
		Gradient struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"gradient"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.InDelta(t, 4.0, resp.Gradient.X, 1e-3)
	assert.InDelta(t, 13.0, resp.Gradient.Y, 1e-3)
}

func TestOperationCommands_ListFlags(t *testing.T) {
	out, err := execute(t, "conservative", "--p", "2*x", "--q", "2*y",
		"--points", "1,1", "--points", "2,-1", "-o", "json")
	require.NoError(t, err)

	var resp struct {
		Conservative bool              `json:"conservative"`
		Checks       []json.RawMessage `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Conservative)
	assert.Len(t, resp.Checks, 2)
}

func TestOperationCommands_InvalidRequest(t *testing.T) {
	_, err := execute(t, "partial", "--expr", "x*y", "--var", "w", "--at", "1,1", "-o", "json")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "multivar version "+multivar.Version+"\n", out)
}

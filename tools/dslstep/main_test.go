package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepeval/engine/runtime"
)

const scenarioA = "../../engine/ast/testdata/scenario_a.json"

func TestStepArgs_Valid(t *testing.T) {
	assert.Error(t, StepArgs{}.Valid())
	assert.Error(t, StepArgs{File: "x.json", Interactive: true}.Valid())
	assert.NoError(t, StepArgs{File: "x.json"}.Valid())
	assert.NoError(t, StepArgs{File: "x.json", Step: true, Interactive: true}.Valid())
}

func TestRun_Direct(t *testing.T) {
	var out bytes.Buffer
	ret, err := run(context.Background(), StepArgs{File: scenarioA}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(7), ret)
	assert.Empty(t, out.String())
}

func TestRun_Step(t *testing.T) {
	var out bytes.Buffer
	ret, err := run(context.Background(), StepArgs{File: scenarioA, Step: true}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(7), ret)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 13)
	assert.Contains(t, lines[0], "start@0")
	assert.Contains(t, lines[11], "function_body")
}

func TestRun_Interactive(t *testing.T) {
	var out bytes.Buffer
	_, err := run(context.Background(), StepArgs{File: scenarioA, Step: true, Interactive: true}, strings.NewReader("\n\n\n"), &out)
	assert.Error(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 4)

	out.Reset()
	ret, err := run(context.Background(), StepArgs{File: scenarioA, Step: true, Interactive: true}, strings.NewReader(strings.Repeat("\n", 13)), &out)
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(7), ret)
}

func TestRun_MissingFile(t *testing.T) {
	_, err := run(context.Background(), StepArgs{File: "does-not-exist.json"}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

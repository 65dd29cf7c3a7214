package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFlags() simulateFlags {
	return simulateFlags{
		bannerFile: filepath.Join("..", "..", "configs", "banners.yaml"),
		bannerType: 301,
		trials:     200,
		goal:       "first_top",
		budget:     90,
		seed:       42,
	}
}

func TestRunSimulate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runSimulate(context.Background(), &out, sampleFlags()))
	assert.Contains(t, out.String(), "banner=301 goal=first_top trials=200")
	assert.Contains(t, out.String(), "p99=")
}

func TestRunSimulateIsReproducible(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, runSimulate(context.Background(), &a, sampleFlags()))
	require.NoError(t, runSimulate(context.Background(), &b, sampleFlags()))
	assert.Equal(t, a.String(), b.String())
}

func TestRunSimulateErrors(t *testing.T) {
	fl := sampleFlags()
	fl.bannerType = 999
	assert.ErrorContains(t, runSimulate(context.Background(), &bytes.Buffer{}, fl), "banner 999 not found")

	fl = sampleFlags()
	fl.goal = "most_pulls"
	assert.Error(t, runSimulate(context.Background(), &bytes.Buffer{}, fl))

	fl = sampleFlags()
	fl.bannerFile = "missing.yaml"
	assert.Error(t, runSimulate(context.Background(), &bytes.Buffer{}, fl))
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlovans/verita/pkg/schema"
)

func TestDraftFromFlag(t *testing.T) {
	cases := map[string]schema.Draft{
		"draft-04": schema.Draft04,
		"04":       schema.Draft04,
		"draft-06": schema.Draft06,
		"draft-07": schema.Draft07,
		"2019-09":  schema.Draft2019,
		"":         schema.Draft2019,
		"garbage":  schema.Draft2019,
	}
	for in, want := range cases {
		assert.Equal(t, want, draftFromFlag(in), "input %q", in)
	}
}

func TestOutputFormatFromFlag(t *testing.T) {
	cases := map[string]schema.OutputFormat{
		"flag":     schema.OutputFlag,
		"basic":    schema.OutputBasic,
		"detailed": schema.OutputDetailed,
		"":         schema.OutputDetailed,
		"garbage":  schema.OutputDetailed,
	}
	for in, want := range cases {
		assert.Equal(t, want, outputFormatFromFlag(in), "input %q", in)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["validate"])
	assert.True(t, names["lint"])
}

package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd(t *testing.T) {
	cmd := getShowCmd()
	assert.ElementsMatch(t, []string{
		"categories", "items", "vocabulary", "recipes", "references",
	}, cmd.ValidArgs)

	home := t.TempDir()
	_, err := execute(t, "", "show", "--home", home)
	assert.Error(t, err, "needs at least one argument")
}

func TestShow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}
	home := t.TempDir()
	_, err := execute(t, "", "create", "--home", home)
	require.NoError(t, err)

	tests := []struct {
		args []string
		body string
	}{
		{[]string{"categories"}, `[{"id":1,"name":"Herbs"}]`},
		{[]string{"items", "1"}, `[]`},
		{[]string{"items", "42"}, `[]`},
		{[]string{"recipes", "1"}, `[]`},
		{[]string{"vocabulary", "1"}, `[]`},
		{[]string{"references"}, `[]`},
	}
	for _, tt := range tests {
		args := append([]string{"show"}, tt.args...)
		args = append(args, "--home", home)
		out, err := execute(t, "", args...)
		require.NoError(t, err, tt.args)
		assert.JSONEq(t, tt.body, out, tt.args)
	}
}

func TestShowErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		msg  string
		args []string
	}{
		{"missing id", []string{"items"}},
		{"bad id", []string{"recipes", "one"}},
		{"unknown target", []string{"herbs", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := show(ctx, nil, tt.args)
			assert.Equal(t, errcode.ValidationError, catalog.Code(err))
		})
	}
}

func TestShowEmptyCatalog(t *testing.T) {
	home := t.TempDir()
	out, err := execute(t, "", "show", "categories", "--home", home,
		"--db-path", filepath.Join(home, "empty.sqlite"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

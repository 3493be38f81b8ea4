package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommands(t *testing.T) {
	tests := []struct {
		cmd     *cobra.Command
		use     string
		example string
	}{
		{getMigrateCmd(), "migrate", "bosdb migrate"},
		{getImportCmd(), "import FILE", "bosdb import herbs.yaml"},
		{getOptimizeCmd(), "optimize", "bosdb optimize --driver postgres"},
		{getServeCmd(), "serve", "bosdb serve --port 9000"},
		{getShowCmd(), "show WHAT [CATEGORY_ID]", "bosdb show items 1"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.Contains(t, tt.cmd.Long, tt.example)
			assert.NotNil(t, tt.cmd.RunE)
		})
	}
}

func TestServeCmdPortFlag(t *testing.T) {
	cmd := getServeCmd()
	flag := cmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
}

func TestImportCmdArgs(t *testing.T) {
	cmd := getImportCmd()
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"herbs.yaml"}))
}

package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Equal(t, "alarm-clock/"+Short(), UserAgent("alarm-clock"))
}

// TestAttachCobraVersionCommand runs the subcommand with and without --short.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		args []string
		want string
	}{
		{args: []string{"version"}, want: Full()},
		{args: []string{"version", "--short"}, want: Short()},
	} {
		root := &cobra.Command{Use: "alarm-clock"}
		AttachCobraVersionCommand(root)

		var out bytes.Buffer

		root.SetOut(&out)
		root.SetArgs(tc.args)

		require.NoError(t, root.Execute())
		require.Equal(t, tc.want, strings.TrimSpace(out.String()))
	}
}

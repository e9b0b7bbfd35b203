package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Administer the role directory",
	Long: `Lists and edits the members of a group in the configured directory.
The gateway itself only ever reads the directory, editing is done here.`,
}

func init() {
	rootCmd.AddCommand(rolesCmd)

	f.bindConfigFlag(rolesCmd.PersistentFlags())
}

// withDirectory opens the configured directory for the duration of fn.
func withDirectory(ctx context.Context, fn func(dir core.Directory) error) error {
	dir, err := f.BuildDirectory(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = dir.Close()
	}()
	return fn(dir)
}

func writable(dir core.Directory) (core.DirectoryWriter, error) {
	w, ok := dir.(core.DirectoryWriter)
	if !ok {
		return nil, fmt.Errorf("configured directory does not support editing")
	}
	return w, nil
}

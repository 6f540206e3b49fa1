package importer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/command/helper"
	"github.com/xgr-network/xgr-abi/sigdb"
)

var errStdinTwice = errors.New("standard input can only be read once")

type importParams struct {
	files []string
}

func (p *importParams) validateFlags() error {
	stdin := 0

	for _, f := range p.files {
		if f == helper.StdinArg {
			stdin++
		}
	}

	if stdin > 1 {
		return errStdinTwice
	}

	return nil
}

// importFiles imports every file. The result is returned together with the
// error when some lines were rejected.
func (p *importParams) importFiles(cmd *cobra.Command, env *helper.Environment) (*ImportResult, error) {
	dir, err := env.OpenDirectory()
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	result := &ImportResult{}

	var rejected *multierror.Error

	for _, file := range p.files {
		added, err := importFile(cmd, dir, file)

		result.Added += added

		var merr *multierror.Error

		switch {
		case err == nil:
		case errors.As(err, &merr):
			result.Rejected += len(merr.Errors)
			rejected = multierror.Append(rejected, fmt.Errorf("%s: %w", file, err))
		default:
			return nil, err
		}

		result.Files = append(result.Files, file)
	}

	env.Metrics.ObserveImport(result.Added, result.Rejected)

	return result, rejected.ErrorOrNil()
}

func importFile(cmd *cobra.Command, dir *sigdb.Directory, file string) (int, error) {
	var r io.Reader

	if file == helper.StdinArg {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(file)
		if err != nil {
			return 0, fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()

		r = f
	}

	return dir.ImportReader(r)
}

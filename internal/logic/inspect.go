package logic

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/scrambler/internal/logger"
)

// inspectFile reports the fragments of an archive in recovered order.
// It needs no passphrase and decrypts nothing.
func inspectFile(log *logger.Logger, input string) Result {
	contents, err := readArchive(input)
	if err != nil {
		return Result{Error: err}
	}

	var (
		report strings.Builder
		total  int
	)

	sealed := "not sealed"
	if contents.seal != nil {
		sealed = "sealed"
	}

	fmt.Fprintf(&report, "%s: %d fragments, base %q, %s\n", input, len(contents.fragments), contents.base, sealed)

	for i, part := range contents.fragments {
		total += len(part)

		fmt.Fprintf(&report, "  %-2d %-24s %s\n", i, contents.names[i], humanize.Bytes(uint64(len(part))))
	}

	fmt.Fprintf(&report, "  payload %s\n", humanize.Bytes(uint64(total)))

	log.Debug().Int("payload", total).Msg("inspected")

	return Result{Report: report.String(), InputSize: int64(total)}
}

package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"rockerboo/mockito-tools/bridge"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/utils"

	"github.com/spf13/cobra"
)

// errNotSupported is what the user sees for a caret that is not on a method
var errNotSupported = errors.New("This feature is not supported")

type stubOptions struct {
	toClipboard bool
	zeroBased   bool
}

func newStubCmd(a *app) *cobra.Command {
	opts := &stubOptions{}

	cmd := &cobra.Command{
		Use:   "stub <kind> <file> <line> <column>",
		Short: "Generate a statement for the method at a position in a Java file",
		Long: `Resolve the method declaration or call at a position through the language
server and generate a Mockito statement for it. Line and column are 1-based,
as editors show them, unless --zero-based is set.`,
		Example: `  mockito-tools stub then_return src/main/java/shop/OrderService.java 12 21`,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStub(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.toClipboard, "copy", true, "Copy the statement to the clipboard")
	cmd.Flags().BoolVar(&opts.zeroBased, "zero-based", false, "Line and column are 0-based")

	return cmd
}

// parsePosition converts a line or column argument to a 0-based offset
func parsePosition(name, value string, zeroBased bool) (uint32, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}

	if zeroBased {
		return uint32(n), nil
	}

	if n == 0 {
		return 0, fmt.Errorf("invalid %s %q: positions start at 1", name, value)
	}
	return uint32(n - 1), nil
}

func (a *app) runStub(cmd *cobra.Command, opts *stubOptions, args []string) error {
	kind, err := mockgen.ParseKind(args[0])
	if err != nil {
		return err
	}

	line, err := parsePosition("line", args[2], opts.zeroBased)
	if err != nil {
		return err
	}

	character, err := parsePosition("column", args[3], opts.zeroBased)
	if err != nil {
		return err
	}

	deliver := opts.toClipboard
	if !cmd.Flags().Changed("copy") {
		deliver = a.config.GetMockitoConfig().ShouldCopy()
	}

	b, err := a.newBridge()
	if err != nil {
		return err
	}
	defer b.CloseAllClients()

	uri := utils.NormalizeURI(args[1])

	result, err := b.GenerateAt(kind, uri, line, character, deliver)
	if err != nil {
		if errors.Is(err, bridge.ErrNotSupported) {
			logger.Info(fmt.Sprintf("stub: %v", err))
			return errNotSupported
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Statement)
	fmt.Fprintln(cmd.ErrOrStderr(), result.Message)

	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"rockerboo/mockito-tools/javasig"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/types"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	owner       string
	method      string
	params      []string
	returns     string
	all         bool
	toClipboard bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [kind]",
		Short: "Generate a statement from an explicit method signature",
		Long: `Generate a Mockito stubbing statement without a language server.
kind is one of do_nothing, do_return, then_return, then_throw.`,
		Example: `  mockito-tools generate then_return --owner Calculator --method add --param int --param int --returns int
  mockito-tools generate --all --owner UserService --method findUser --param String --param int --returns User`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.owner, "owner", "", "Class or interface that declares the method")
	cmd.Flags().StringVar(&opts.method, "method", "", "Method name")
	cmd.Flags().StringArrayVar(&opts.params, "param", nil, "Parameter type, repeat in declaration order")
	cmd.Flags().StringVar(&opts.returns, "returns", types.DefaultUnresolvedType, "Return type")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Print every statement kind")
	cmd.Flags().BoolVar(&opts.toClipboard, "copy", false, "Copy the statement to the clipboard")

	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func (o *generateOptions) signature() (mockgen.MethodSignature, error) {
	params := make([]string, len(o.params))
	for i, p := range o.params {
		params[i] = javasig.SimpleTypeName(p)
	}

	owner := strings.TrimSpace(o.owner)
	if owner != "" {
		owner = javasig.SimpleTypeName(owner)
	}

	sig := mockgen.MethodSignature{
		OwnerType:      owner,
		MethodName:     strings.TrimSpace(o.method),
		ParameterTypes: params,
		ReturnType:     javasig.SimpleTypeName(o.returns),
	}

	return sig, sig.Validate()
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions, args []string) error {
	sig, err := opts.signature()
	if err != nil {
		return err
	}

	var output string

	if opts.all {
		statements := mockgen.GenerateAll(sig)
		for _, kind := range mockgen.Kinds() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", kind, statements[kind])
		}
		output = joinStatements(statements)
	} else {
		kind, err := mockgen.ParseKind(args[0])
		if err != nil {
			return err
		}
		output = mockgen.Generate(kind, sig)
		fmt.Fprintln(cmd.OutOrStdout(), output)
	}

	logger.Debug("generate: " + sig.String())

	if opts.toClipboard {
		return a.deliver(cmd, output)
	}

	return nil
}

func joinStatements(statements map[mockgen.StatementKind]string) string {
	lines := make([]string, 0, len(statements))
	for _, kind := range mockgen.Kinds() {
		lines = append(lines, statements[kind])
	}
	return strings.Join(lines, "\n")
}

// deliver copies text to the clipboard and notifies on stderr
func (a *app) deliver(cmd *cobra.Command, text string) error {
	if err := a.clipboard.WriteAll(text); err != nil {
		logger.Warn(fmt.Sprintf("Clipboard delivery failed: %v", err))
		return fmt.Errorf("clipboard unavailable: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Code copied to clipboard")
	return nil
}

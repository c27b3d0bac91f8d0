package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/payload"
	"github.com/fardilk/fardil-cms-site/internal/cms/utils"
	"github.com/spf13/cobra"
)

type Options struct {
	In     string
	Out    string
	Minify bool
	Indent bool
}

type converter func(in []byte, opts *Options) ([]byte, error)

var converters = []struct {
	use   string
	short string
	conv  converter
}{
	{"html2blocks", "HTML to blocks json", htmlToBlocks},
	{"blocks2html", "Blocks json to HTML", blocksToHTML},
	{"md2blocks", "Markdown to blocks json", markdownToBlocks},
	{"blocks2md", "Blocks json to Markdown", blocksToMarkdown},
	{"payload2blocks", "Article content payload to blocks json", payloadToBlocks},
	{"blocks2payload", "Blocks json to article content payload", blocksToPayload},
}

func newCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(converters))
	for _, c := range converters {
		opts := &Options{}
		cmd := &cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(c.conv, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			},
		}
		cmd.Flags().StringVarP(&opts.In, "in", "i", "-", "input file, - for stdin")
		cmd.Flags().StringVarP(&opts.Out, "out", "o", "-", "output file, - for stdout")
		cmd.Flags().BoolVar(&opts.Minify, "minify", false, "minify html output")
		cmd.Flags().BoolVar(&opts.Indent, "indent", true, "indent json output")
		cmds = append(cmds, cmd)
	}
	return cmds
}

func run(conv converter, opts *Options, stdin io.Reader, stdout io.Writer) error {
	var (
		in  []byte
		err error
	)
	if opts.In == "-" {
		in, err = io.ReadAll(stdin)
	} else {
		in, err = os.ReadFile(opts.In)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	out, err := conv(in, opts)
	if err != nil {
		return err
	}

	if opts.Out == "-" {
		_, err = stdout.Write(out)
		return err
	}
	return os.WriteFile(opts.Out, out, 0o644)
}

func writeJSON(v any, opts *Options) ([]byte, error) {
	if opts.Indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// readBlocks принимает как массив блоков, так и объект {"blocks": [...]}.
func readBlocks(in []byte) ([]edtypes.Block, error) {
	var blocks []edtypes.Block
	if err := json.Unmarshal(in, &blocks); err == nil {
		return blocks, nil
	}
	var wrapped struct {
		Blocks []edtypes.Block `json:"blocks"`
	}
	if err := json.Unmarshal(in, &wrapped); err != nil {
		return nil, fmt.Errorf("parse blocks: %w", err)
	}
	return wrapped.Blocks, nil
}

func htmlToBlocks(in []byte, opts *Options) ([]byte, error) {
	return writeJSON(editor.HTMLToBlocks(string(in)), opts)
}

func blocksToHTML(in []byte, opts *Options) ([]byte, error) {
	blocks, err := readBlocks(in)
	if err != nil {
		return nil, err
	}
	out := editor.BlocksToHTML(blocks)
	if opts.Minify {
		if out, err = utils.MinifyHTML(out); err != nil {
			return nil, err
		}
	}
	return []byte(out), nil
}

func markdownToBlocks(in []byte, opts *Options) ([]byte, error) {
	blocks, err := editor.MarkdownToBlocks(in)
	if err != nil {
		return nil, err
	}
	return writeJSON(blocks, opts)
}

func blocksToMarkdown(in []byte, _ *Options) ([]byte, error) {
	blocks, err := readBlocks(in)
	if err != nil {
		return nil, err
	}
	out, err := payload.BlocksToMarkdown(blocks)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func payloadToBlocks(in []byte, opts *Options) ([]byte, error) {
	var p payload.Payload
	if err := json.Unmarshal(in, &p); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return writeJSON(payload.PayloadToBlocks(p), opts)
}

func blocksToPayload(in []byte, opts *Options) ([]byte, error) {
	blocks, err := readBlocks(in)
	if err != nil {
		return nil, err
	}
	p, err := payload.BuildContentPayload(blocks)
	if err != nil {
		return nil, err
	}
	return writeJSON(p, opts)
}

package format

import (
	"context"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// EsbuildFormatter reprints JavaScript and CSS through esbuild's parser
// and printer. It needs no cgo, but esbuild drops ordinary comments and
// rewrites some literals, so the tree-sitter LayoutFormatter is preferred
// where it is available.
type EsbuildFormatter struct{}

// Format implements Formatter.
func (EsbuildFormatter) Format(ctx context.Context, path string, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := api.LoaderJSX
	if DialectFor(path) == DialectCSS {
		loader = api.LoaderCSS
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:        loader,
		Sourcefile:    path,
		JSX:           api.JSXPreserve,
		Charset:       api.CharsetUTF8,
		LegalComments: api.LegalCommentsInline,
		LogLevel:      api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return nil, esbuildError(result.Errors[0])
	}
	if len(result.Code) == 0 {
		return nil, nil
	}
	return result.Code, nil
}

func esbuildError(msg api.Message) error {
	if msg.Location == nil {
		return fmt.Errorf("syntax error: %s", msg.Text)
	}
	return fmt.Errorf("syntax error at line %d, column %d: %s",
		msg.Location.Line, msg.Location.Column+1, msg.Text)
}

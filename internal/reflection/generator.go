package reflection

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/jot/internal/llm"
	"go.uber.org/zap"
)

// ErrAssembly marks a fault while building the prompt or the result.
var ErrAssembly = errors.New("reflection assembly failure")

// Completer produces raw completion text; see llm.Client.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) llm.Outcome
}

type Generator struct {
	completer Completer
	lenient   bool
	log       *zap.Logger
	render    func(llm.PromptInput) (string, error)
}

type Option func(*Generator)

// WithLenientHeaders parses live completions with ParseLenient.
func WithLenientHeaders(on bool) Option {
	return func(g *Generator) { g.lenient = on }
}

func NewGenerator(c Completer, log *zap.Logger, opts ...Option) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Generator{
		completer: c,
		log:       log.With(zap.String("component", "reflection")),
		render:    llm.RenderUserPrompt,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate always returns a fully populated Result. Completion failures are
// absorbed by the client's fallback text; anything else that goes wrong is
// logged and replaced by PlaceholderResult.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	res, err := g.generate(ctx, req)
	if err != nil {
		g.log.Error("generating reflection", zap.Error(err))
		return PlaceholderResult()
	}
	return res
}

func (g *Generator) generate(ctx context.Context, req Request) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAssembly, r)
		}
	}()

	userPrompt, err := g.render(llm.PromptInput{
		Journal:    req.Journal,
		Intention:  req.Intention,
		Dream:      req.Dream,
		Priorities: req.Priorities,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrAssembly, err)
	}

	out := g.completer.Complete(ctx, llm.SystemPrompt, userPrompt)
	if !out.OK() {
		g.log.Warn("completion unavailable, reflecting from fallback text", zap.Error(out.Err))
	}

	parse := Parse
	if g.lenient && out.OK() {
		parse = ParseLenient
	}
	return Assemble(out.Text, parse(out.Text)), nil
}

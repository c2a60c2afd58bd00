package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
)

// Pipeline runs the responder stages as a compiled eino chain.
type Pipeline struct {
	runnable compose.Runnable[Turn, Result]
}

// NewPipeline compiles extract → route → reply into a chain.
func NewPipeline(ctx context.Context, responder *Responder) (*Pipeline, error) {
	chain := compose.NewChain[Turn, Result]()
	chain.
		AppendLambda(compose.InvokableLambda(func(_ context.Context, turn Turn) (drafted, error) {
			return responder.extract(turn), nil
		})).
		AppendLambda(compose.InvokableLambda(func(_ context.Context, d drafted) (routed, error) {
			return responder.route(d), nil
		})).
		AppendLambda(compose.InvokableLambda(func(_ context.Context, rt routed) (Result, error) {
			return responder.reply(rt), nil
		}))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile responder chain: %w", err)
	}

	return &Pipeline{runnable: runnable}, nil
}

// Run processes one turn.
func (p *Pipeline) Run(ctx context.Context, turn Turn) (Result, error) {
	result, err := p.runnable.Invoke(ctx, turn)
	if err != nil {
		return Result{}, fmt.Errorf("responder chain failed: %w", err)
	}
	return result, nil
}

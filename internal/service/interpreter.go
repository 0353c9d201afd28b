package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

// QueryInterpreter turns raw search text into structured parameters. The
// deterministic rule layer always works and is what the search path uses
// inline; the model path is opt-in, bounded by a timeout, and falls back to
// the rules on any failure so interpretation never errors outward.
type QueryInterpreter struct {
	ai      AIClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewQueryInterpreter builds an interpreter. ai may be nil when no model is
// configured.
func NewQueryInterpreter(ai AIClient, timeout time.Duration, logger *zap.Logger) *QueryInterpreter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &QueryInterpreter{ai: ai, timeout: timeout, logger: logger}
}

// Interpret runs the deterministic rule layer. An unrecognizable query comes
// back with only residual text set; an empty query comes back empty.
func (p *QueryInterpreter) Interpret(query string) model.QueryParameters {
	return interpretRules(query)
}

// InterpretWithModel asks the language model for an interpretation and
// reports which path produced the result. Model errors and timeouts degrade
// to the rule layer with the fallback source.
func (p *QueryInterpreter) InterpretWithModel(ctx context.Context, query string) (model.QueryParameters, model.InterpretSource) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.QueryParameters{}, model.SourceRules
	}
	if p.ai == nil || !p.ai.Enabled() {
		return p.Interpret(query), model.SourceRules
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params, err := p.ai.InterpretQuery(ctx, query)
	if err != nil {
		p.logger.Warn("model interpretation failed, using rule layer",
			zap.String("query", query),
			zap.Error(err))
		return p.Interpret(query), model.SourceFallback
	}
	return *params, model.SourceModel
}

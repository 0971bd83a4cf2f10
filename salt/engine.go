package salt

import (
	"context"
	"errors"
	"strings"
)

// Source is one mining strategy. Mine either fully succeeds or returns an
// error, which makes the engine fall through to the next source.
type Source interface {
	Name() string
	Mine(ctx context.Context, req MineRequest) (Salt, error)
}

// Engine tries its sources in priority order. The last source is expected to
// be RandomSource so Search always yields a salt; only a RandomSource salt is
// reported as non-mined.
type Engine struct {
	sources []Source
}

// Options selects and parameterizes the mining strategies. When RemoteURL is
// set the remote service is the only constrained strategy; otherwise the
// local forge pipeline is used when MinerPath is set.
type Options struct {
	RemoteURL string
	APIKey    string

	ContractsDir string
	ForgeScript  string
	MinerPath    string
	RPCURL       string

	Ctx Context
}

func NewEngine(opts Options) *Engine {
	sources := make([]Source, 0, 2)
	if opts.RemoteURL != "" {
		sources = append(sources, NewRemoteSource(opts.RemoteURL, opts.APIKey))
	} else if opts.MinerPath != "" {
		sources = append(sources, &ForgeSource{
			ContractsDir: opts.ContractsDir,
			ForgeScript:  opts.ForgeScript,
			MinerPath:    opts.MinerPath,
			RPCURL:       opts.RPCURL,
			Ctx:          opts.Ctx,
		})
	}
	sources = append(sources, RandomSource{})
	return &Engine{sources: sources}
}

// NewEngineWithSources is used by tests and callers that compose their own
// strategy order.
func NewEngineWithSources(sources ...Source) *Engine {
	return &Engine{sources: sources}
}

// Search returns the first salt any source yields. It only errors when every
// source fails, which cannot happen with RandomSource in last position.
func (e *Engine) Search(ctx context.Context, req MineRequest) (Result, error) {
	reasons := make([]string, 0, len(e.sources))
	for _, src := range e.sources {
		s, err := src.Mine(ctx, req)
		if err != nil {
			log.Warn("salt source failed", "source", src.Name(), "err", err)
			reasons = append(reasons, src.Name()+": "+err.Error())
			continue
		}
		_, isRandom := src.(RandomSource)
		res := Result{
			Salt:  s,
			Mined: !isRandom,
		}
		if isRandom {
			res.Reason = strings.Join(reasons, "; ")
			if res.Reason == "" {
				res.Reason = "no mining backend configured"
			}
		}
		return res, nil
	}
	return Result{}, errors.New("all salt sources failed: " + strings.Join(reasons, "; "))
}

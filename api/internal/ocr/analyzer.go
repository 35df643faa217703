package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"cash-reader/api/internal/logger"
	"cash-reader/api/internal/ocr/types"
	"cash-reader/api/internal/util"
)

// Analyzer turns a photo of a change-dispenser display into denomination
// counts. It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	engine    Engine
	apiKey    string
	maxPixels int64
}

type Option func(*Analyzer)

// WithMaxPixels caps the declared width*height of an upload. n <= 0 keeps
// DefaultMaxPixels.
func WithMaxPixels(n int64) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxPixels = n
		}
	}
}

// NewAnalyzer binds engine to the provider credential read at startup. An
// empty key is allowed; Analyze then fails every call.
func NewAnalyzer(engine Engine, apiKey string, opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:    engine,
		apiKey:    strings.TrimSpace(apiKey),
		maxPixels: DefaultMaxPixels,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HasCredential reports whether a provider key was configured.
func (a *Analyzer) HasCredential() bool { return a.apiKey != "" }

// Engine returns the backend used for inference.
func (a *Analyzer) Engine() Engine { return a.engine }

// Analyze reads the counts shown in imageBytes. Every returned error is a
// *types.AnalysisError.
func (a *Analyzer) Analyze(ctx context.Context, imageBytes []byte) (types.DenominationCount, error) {
	if !a.HasCredential() {
		return nil, types.NewMissingCredentialError()
	}

	img, err := prepareImage(imageBytes, a.maxPixels)
	if err != nil {
		return nil, types.NewImageDecodeError(err)
	}
	log := logger.WithFields(logrus.Fields{
		"engine": a.engine.Name(),
		"model":  a.engine.GetModel(),
		"format": img.Format,
		"mime":   img.MIME,
		"width":  img.Width,
		"height": img.Height,
	})
	log.Debug("sending display image to provider")

	raw, err := a.engine.ReadDisplay(ctx, CountPrompt, img.Data, img.MIME)
	if err != nil {
		return nil, types.NewProviderError(err)
	}

	text := util.StripCodeFences(raw)
	parsed, err := decodeObject(text)
	if err != nil {
		excerpt := util.Excerpt(text, types.ExcerptLimit)
		log.WithError(err).WithField("excerpt", excerpt).Debug("provider reply is not a JSON object")
		return nil, types.NewResponseDecodeError(err, excerpt)
	}

	for k := range parsed {
		if !slices.Contains(types.Denominations, k) {
			log.WithField("key", k).Debug("dropping unknown denomination")
		}
	}
	return types.Backfill(parsed), nil
}

// decodeObject parses text as exactly one JSON object. Numbers keep their
// literal form.
func decodeObject(text string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty response")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", jsonKind(v))
	}
	return m, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

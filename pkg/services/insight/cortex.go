package insight

import (
	"context"
	"database/sql"
	"fmt"
)

// Models the completion service accepts.
var supportedModels = map[string]bool{
	"llama3.1-70b":      true,
	"claude-3-5-sonnet": true,
	"mistral-large2":    true,
}

// Analyzer turns a metrics summary into free-form prose. The returned text is
// opaque to the rest of the system.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
	Model() string
}

type cortexAnalyzer struct {
	db    *sql.DB
	model string
}

// NewCortexAnalyzer returns an Analyzer backed by Snowflake Cortex COMPLETE,
// running over the same warehouse connection as the data layer. The model
// name is validated once here; an unknown model is a configuration error.
func NewCortexAnalyzer(db *sql.DB, model string) (Analyzer, error) {
	if !supportedModels[model] {
		return nil, fmt.Errorf("unsupported AI model %q", model)
	}
	return &cortexAnalyzer{db: db, model: model}, nil
}

func (a *cortexAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	query := `SELECT SNOWFLAKE.CORTEX.COMPLETE(?, ?) AS analysis`

	var analysis string
	if err := a.db.QueryRowContext(ctx, query, a.model, prompt).Scan(&analysis); err != nil {
		return "", fmt.Errorf("cortex completion failed: %w", err)
	}
	return analysis, nil
}

func (a *cortexAnalyzer) Model() string {
	return a.model
}

type disabledAnalyzer struct{}

// NewDisabledAnalyzer returns an Analyzer for deployments whose warehouse has
// no completion service. Every call fails with a clear error instead of
// pretending to analyze.
func NewDisabledAnalyzer() Analyzer {
	return disabledAnalyzer{}
}

func (disabledAnalyzer) Analyze(context.Context, string) (string, error) {
	return "", fmt.Errorf("AI analysis is not available on this warehouse platform")
}

func (disabledAnalyzer) Model() string { return "" }

package consent

import "errors"

// Engine errors.
var (
	// ErrEmptyLexicon indicates the lexicon carries no patterns in any
	// primary consent class, so classification would be meaningless.
	ErrEmptyLexicon = errors.New("consent lexicon has no patterns")

	// ErrAnalysisFailed wraps an unexpected internal failure recovered
	// during classification.
	ErrAnalysisFailed = errors.New("consent analysis failed")
)

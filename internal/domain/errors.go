package domain

import "errors"

// Domain errors are contained at component boundaries and surfaced as
// typed outcomes; callers match them with errors.Is.
var (
	// ErrDictionaryUnavailable indicates neither dictionary source is
	// present or parseable. Scoring proceeds with an empty dictionary.
	ErrDictionaryUnavailable = errors.New("no dictionary source available")

	// ErrDictionaryParse indicates one dictionary source is malformed.
	// The load precedence chain continues past it.
	ErrDictionaryParse = errors.New("dictionary source malformed")

	// ErrEmptyCorpus indicates dictionary generation received no usable
	// corpus texts. The prior dictionary is left untouched.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrNoSurvivingTerms indicates no term survived frequency filtering
	// and ranking. The prior dictionary is left untouched.
	ErrNoSurvivingTerms = errors.New("no terms survived ranking")

	// ErrMalformedBatch indicates a tabular batch is missing a required
	// content field; the whole batch is rejected before any row is scored.
	ErrMalformedBatch = errors.New("batch is missing required content column")
)

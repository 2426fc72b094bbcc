package similarity

import (
	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/pkg/models"
)

const (
	// DefaultSimilarThreshold is the pre-submit soft-warning preset
	DefaultSimilarThreshold = 0.6
	// DefaultDuplicateThreshold is the stricter duplicate preset
	DefaultDuplicateThreshold = 0.85
)

// Options tunes a Matcher. Zero values fall back to the defaults.
type Options struct {
	SimilarThreshold   float64
	DuplicateThreshold float64
	MinTokenLength     int
	StopWords          StopWords
	TerminalStatuses   []models.Status
}

// DefaultOptions returns the built-in presets and Portuguese stop words
func DefaultOptions() Options {
	return Options{
		SimilarThreshold:   DefaultSimilarThreshold,
		DuplicateThreshold: DefaultDuplicateThreshold,
		MinTokenLength:     DefaultMinTokenLength,
		StopWords:          DefaultStopWords(),
		TerminalStatuses:   models.DefaultTerminalStatuses,
	}
}

// Matcher decides which existing defects look like a drafted one.
// It holds only read-only settings and is safe for concurrent use.
type Matcher struct {
	similarThreshold   float64
	duplicateThreshold float64
	minTokenLength     int
	stopWords          StopWords
	terminal           map[models.Status]struct{}
}

// NewMatcher creates a matcher from options
func NewMatcher(opts Options) *Matcher {
	def := DefaultOptions()
	if opts.SimilarThreshold == 0 {
		opts.SimilarThreshold = def.SimilarThreshold
	}
	if opts.DuplicateThreshold == 0 {
		opts.DuplicateThreshold = def.DuplicateThreshold
	}
	if opts.MinTokenLength <= 0 {
		opts.MinTokenLength = def.MinTokenLength
	}
	if opts.StopWords == nil {
		opts.StopWords = def.StopWords
	}
	if len(opts.TerminalStatuses) == 0 {
		opts.TerminalStatuses = def.TerminalStatuses
	}

	terminal := make(map[models.Status]struct{}, len(opts.TerminalStatuses))
	for _, s := range opts.TerminalStatuses {
		terminal[models.NormalizeStatus(string(s))] = struct{}{}
	}

	return &Matcher{
		similarThreshold:   opts.SimilarThreshold,
		duplicateThreshold: opts.DuplicateThreshold,
		minTokenLength:     opts.MinTokenLength,
		stopWords:          opts.StopWords,
		terminal:           terminal,
	}
}

// NewFromConfig creates a matcher from the matcher section of the config
func NewFromConfig(cfg *config.MatcherConfig) *Matcher {
	stop := DefaultStopWords()
	if len(cfg.StopWords) > 0 {
		stop = NewStopWords(cfg.StopWords...)
	}
	if len(cfg.ExtraStopWords) > 0 {
		stop = stop.With(cfg.ExtraStopWords...)
	}

	terminal := make([]models.Status, 0, len(cfg.TerminalStatuses))
	for _, s := range cfg.TerminalStatuses {
		terminal = append(terminal, models.NormalizeStatus(s))
	}

	return NewMatcher(Options{
		SimilarThreshold:   cfg.SimilarThreshold,
		DuplicateThreshold: cfg.DuplicateThreshold,
		MinTokenLength:     cfg.MinTokenLength,
		StopWords:          stop,
		TerminalStatuses:   terminal,
	})
}

// SimilarThreshold returns the "similar" preset
func (m *Matcher) SimilarThreshold() float64 {
	return m.similarThreshold
}

// DuplicateThreshold returns the "duplicate" preset
func (m *Matcher) DuplicateThreshold() float64 {
	return m.duplicateThreshold
}

// Evaluation is the per-candidate breakdown behind a match decision
type Evaluation struct {
	Defect           models.Defect `json:"defect"`
	Excluded         bool          `json:"excluded"`
	SummaryScore     float64       `json:"summary_score"`
	DescriptionScore float64       `json:"description_score"`
	KeywordOverlap   bool          `json:"keyword_overlap"`
	Matched          bool          `json:"matched"`
}

// FindSimilar returns the candidates that look like the draft at the given
// threshold, in input order. Candidates in the draft's project with a
// terminal status are never returned. Candidates are not modified.
func (m *Matcher) FindSimilar(draft models.Draft, candidates []models.Defect, threshold float64) []models.Defect {
	// Nothing to compare against; distinct from "compared and found nothing".
	if draft.IsBlank() {
		return []models.Defect{}
	}

	matches := make([]models.Defect, 0)
	for _, c := range candidates {
		if m.evaluate(draft, c, threshold).Matched {
			matches = append(matches, c)
		}
	}
	return matches
}

// FindSimilarBugs applies the "similar" preset
func (m *Matcher) FindSimilarBugs(draft models.Draft, candidates []models.Defect) []models.Defect {
	return m.FindSimilar(draft, candidates, m.similarThreshold)
}

// FindDuplicateBugs applies the "duplicate" preset
func (m *Matcher) FindDuplicateBugs(draft models.Draft, candidates []models.Defect) []models.Defect {
	return m.FindSimilar(draft, candidates, m.duplicateThreshold)
}

// Explain returns the evaluation of every candidate, in input order.
// A blank draft yields nil.
func (m *Matcher) Explain(draft models.Draft, candidates []models.Defect, threshold float64) []Evaluation {
	if draft.IsBlank() {
		return nil
	}

	evals := make([]Evaluation, len(candidates))
	for i, c := range candidates {
		evals[i] = m.evaluate(draft, c, threshold)
	}
	return evals
}

// IsExcluded reports whether c is a terminal defect of the draft's own project
func (m *Matcher) IsExcluded(draftProjectID string, c models.Defect) bool {
	if c.ProjectID != draftProjectID {
		return false
	}
	_, terminal := m.terminal[models.NormalizeStatus(string(c.Status))]
	return terminal
}

func (m *Matcher) evaluate(draft models.Draft, c models.Defect, threshold float64) Evaluation {
	eval := Evaluation{Defect: c}

	if m.IsExcluded(draft.ProjectID, c) {
		eval.Excluded = true
		return eval
	}

	eval.SummaryScore = Similarity(draft.Summary, c.Summary)
	eval.DescriptionScore = Similarity(draft.Description, c.Description)
	eval.KeywordOverlap = hasCommonKeywords(draft.Summary, c.Summary, m.minTokenLength, m.stopWords) &&
		hasCommonKeywords(draft.Description, c.Description, m.minTokenLength, m.stopWords)

	eval.Matched = eval.SummaryScore >= threshold ||
		eval.DescriptionScore >= threshold ||
		eval.KeywordOverlap

	return eval
}

var defaultMatcher = NewMatcher(DefaultOptions())

// FindSimilarBugs checks a draft against candidates with the default 0.6 preset
func FindSimilarBugs(summary, description, projectID string, candidates []models.Defect) []models.Defect {
	return defaultMatcher.FindSimilarBugs(models.Draft{Summary: summary, Description: description, ProjectID: projectID}, candidates)
}

// FindDuplicateBugs checks a draft against candidates with the default 0.85 preset
func FindDuplicateBugs(summary, description, projectID string, candidates []models.Defect) []models.Defect {
	return defaultMatcher.FindDuplicateBugs(models.Draft{Summary: summary, Description: description, ProjectID: projectID}, candidates)
}

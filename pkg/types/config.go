// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

const (
	// DefaultEndpoint is the public LanguageTool check endpoint.
	DefaultEndpoint = "https://api.languagetool.org/v2/check"

	// DefaultLanguage is the locale submitted with every batch.
	DefaultLanguage = "de-DE"

	// DefaultMaxBatchLength is the exclusive batch length threshold in
	// characters. The public API rejects texts above 20k characters.
	DefaultMaxBatchLength = 18000

	// DefaultMaxFindings caps the findings accumulated across one run.
	DefaultMaxFindings = 20

	DefaultTimeout     = 60 * time.Second
	DefaultUserAgent   = "proofread/0.1"
	DefaultMaxAttempts = 5
	DefaultRetryWait   = 60 * time.Second

	// DefaultContainerImage provides pdftotext for the container backend.
	DefaultContainerImage = "minidocks/poppler:latest"
)

// DefaultDisabledRules lists the LanguageTool rules that produce too much
// noise on typeset documents.
var DefaultDisabledRules = []string{
	"UPPERCASE_SENTENCE_START",
	"DE_CASE",
	"GERMAN_WORD_REPEAT_RULE",
	"DE_PHRASE_REPETITION",
	"COMMA_PARENTHESIS_WHITESPACE",
}

// DefaultAllowList holds proper nouns that the speller flags wrongly.
var DefaultAllowList = []string{"Blechschmidt", "Peeters"}

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetryConfig bounds the wait-and-resubmit loop around a check request.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first (default 5).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// Wait is the fixed pause between attempts (default 60s).
	Wait time.Duration `json:"wait" yaml:"wait"`
}

// CheckConfig holds settings for the remote check stage. Language and
// DisabledRules are compiled in and never read from flags or files.
type CheckConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the URL of the check API.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	Language      string   `json:"language" yaml:"language"`
	DisabledRules []string `json:"disabled_rules" yaml:"disabled_rules"`

	// Username and APIKey enable premium access when both are set.
	Username string `json:"-" yaml:"-"`
	APIKey   string `json:"-" yaml:"-"`

	Retry RetryConfig `json:"retry" yaml:"retry"`
}

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendPdftotext ExtractionBackend = "pdftotext"
	BackendNative    ExtractionBackend = "native"
	BackendContainer ExtractionBackend = "container"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// Backend selects the extraction tool: pdftotext, native, or container.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// ContainerImage is the image run by the container backend.
	ContainerImage string `json:"container_image" yaml:"container_image"`
}

// ReportConfig holds settings for batching, filtering and rendering.
type ReportConfig struct {
	MaxBatchLength int      `json:"max_batch_length" yaml:"max_batch_length"`
	MaxFindings    int      `json:"max_findings" yaml:"max_findings"`
	AllowList      []string `json:"allow_list" yaml:"allow_list"`
}

// RunConfig groups all stage configurations for one invocation.
type RunConfig struct {
	Check      CheckConfig      `json:"check" yaml:"check"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Report     ReportConfig     `json:"report" yaml:"report"`
}

// DefaultConfig returns a RunConfig populated with the compiled-in defaults.
// Slices are copied so callers cannot mutate the package defaults.
func DefaultConfig() RunConfig {
	return RunConfig{
		Check: CheckConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			Endpoint:      DefaultEndpoint,
			Language:      DefaultLanguage,
			DisabledRules: append([]string(nil), DefaultDisabledRules...),
			Retry: RetryConfig{
				MaxAttempts: DefaultMaxAttempts,
				Wait:        DefaultRetryWait,
			},
		},
		Extraction: ExtractionConfig{
			Backend:        BackendPdftotext,
			ContainerImage: DefaultContainerImage,
		},
		Report: ReportConfig{
			MaxBatchLength: DefaultMaxBatchLength,
			MaxFindings:    DefaultMaxFindings,
			AllowList:      append([]string(nil), DefaultAllowList...),
		},
	}
}

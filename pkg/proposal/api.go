package proposal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine generates proposals from a variant catalog and a template directory.
// Use New() to create a new engine instance. An Engine holds no document
// state and is safe for concurrent use.
type Engine struct {
	config  *Config
	catalog *Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// New creates an engine with the global configuration and the built-in catalog.
func New() *Engine {
	return &Engine{
		config:  GetGlobalConfig(),
		catalog: DefaultCatalog(),
		logger:  GetLogger(),
		now:     time.Now,
	}
}

// NewWithConfig creates an engine with a custom configuration. When
// CatalogPath is set the catalog is loaded from that YAML file.
func NewWithConfig(config *Config) (*Engine, error) {
	config = NewConfigWithDefaults(config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	catalog := DefaultCatalog()
	if config.CatalogPath != "" {
		c, err := LoadCatalogFile(config.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	return &Engine{
		config:  config,
		catalog: catalog,
		logger:  GetLogger(),
		now:     time.Now,
	}, nil
}

// WithLogger returns a copy of the engine logging to l.
func (e *Engine) WithLogger(l *zap.Logger) *Engine {
	if l == nil {
		l = zap.NewNop()
	}
	clone := *e
	clone.logger = l
	return &clone
}

// WithCatalog returns a copy of the engine using another variant catalog.
func (e *Engine) WithCatalog(c *Catalog) *Engine {
	clone := *e
	clone.catalog = c
	return &clone
}

// Catalog returns the engine's variant catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// TemplatePath resolves a variant's template file against the template directory.
func (e *Engine) TemplatePath(v Variant) string {
	if filepath.IsAbs(v.Template) {
		return v.Template
	}
	return filepath.Join(e.config.TemplateDir, v.Template)
}

// Request asks for one proposal of the named variant.
type Request struct {
	Variant string `yaml:"variant"`
	Form    Form   `yaml:"form"`
}

// Output is a generated proposal held in memory.
type Output struct {
	Variant  string
	Filename string
	Data     []byte
	Tokens   TokenMap
	Walk     WalkStats
	// RowsRemoved counts the table rows pruned for empty values.
	RowsRemoved int
}

// Generate validates the form, merges it into the variant's template and
// returns the finished DOCX. Validation happens before any template is
// opened, so a rejected form never touches the file system.
func (e *Engine) Generate(ctx context.Context, req Request) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form := req.Form
	if form.Currency == "" {
		form.Currency = e.config.DefaultCurrency
	}
	if form.Date.IsZero() {
		form.Date = e.now()
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	variant, err := e.catalog.Lookup(req.Variant)
	if err != nil {
		return nil, err
	}

	tmpl, err := e.LoadTemplate(e.TemplatePath(variant))
	if err != nil {
		return nil, err
	}

	tokens := Resolve(variant, form)
	result, err := e.Assemble(tmpl, tokens)
	if err != nil {
		return nil, err
	}

	data, err := result.Bytes()
	if err != nil {
		return nil, err
	}

	out := &Output{
		Variant:     variant.Name,
		Filename:    OutputFilename(form.ClientName, form.Date),
		Data:        data,
		Tokens:      tokens,
		Walk:        result.Walk,
		RowsRemoved: result.RowsRemoved,
	}
	e.logger.Info("generated proposal",
		zap.String("variant", out.Variant),
		zap.String("filename", out.Filename),
		zap.Int("paragraphs_merged", out.Walk.Merged),
		zap.Int("rows_removed", out.RowsRemoved),
		zap.Int("bytes", len(out.Data)),
	)
	return out, nil
}

// Save writes the proposal into dir under its derived file name and returns
// the full path. An existing file of the same name is overwritten. An empty
// dir means a new private temporary directory.
//
// The file is written next to its destination and renamed into place, so
// concurrent saves of the same name leave one complete proposal.
func (o *Output) Save(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = PrivateTempDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, o.Filename)
	if err := writeFileAtomic(path, o.Data); err != nil {
		return "", fmt.Errorf("failed to write proposal: %w", err)
	}
	return path, nil
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".proposal-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// PrivateTempDir creates a uniquely named directory under the system temp dir.
func PrivateTempDir() (string, error) {
	dir := filepath.Join(os.TempDir(), "proposal-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	return dir, nil
}

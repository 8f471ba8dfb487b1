package fsdoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/grahms/fsdoc/rst"
)

// StagingConfig locates the documentation tree that events are staged into.
// Relative paths other than DocsDir are resolved against DocsDir.
type StagingConfig struct {
	DocsDir          string // root of the rendered documentation
	BaseDir          string // ancestor directory name that template paths are made relative to
	IndexFile        string
	NewIndexFile     string // temporary copy merged into IndexFile
	ProcessFile      string
	ProcessSourceDir string // directory holding one description per process
	ProcessPrefix    string
}

// DefaultStagingConfig returns the layout of an AIDE documentation build
// rooted at docsDir.
func DefaultStagingConfig(docsDir string) StagingConfig {
	c := StagingConfig{DocsDir: docsDir}
	c.applyDefaults()
	return c
}

func (c *StagingConfig) applyDefaults() {
	if c.DocsDir == "" {
		c.DocsDir = "."
	}
	if c.BaseDir == "" {
		c.BaseDir = "doc_files"
	}
	if c.IndexFile == "" {
		c.IndexFile = "index.rst"
	}
	if c.NewIndexFile == "" {
		c.NewIndexFile = "new_index.rst"
	}
	if c.ProcessFile == "" {
		c.ProcessFile = filepath.Join("Introduction", "Treatment_Process.rst")
	}
	if c.ProcessSourceDir == "" {
		c.ProcessSourceDir = filepath.Join("..", "doc_files", "Introduction")
	}
	if c.ProcessPrefix == "" {
		c.ProcessPrefix = "Treatment_Process_"
	}
}

func (c StagingConfig) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DocsDir, p)
}

// Stager is an EventSink that copies templates into the documentation tree
// and merges index and process documents into the existing ones.
type Stager struct {
	cfg    StagingConfig
	merger *rst.Merger
	log    *zap.Logger
}

// NewStager creates a Stager. A nil merger uses the default markers and a
// nil logger discards.
func NewStager(cfg StagingConfig, merger *rst.Merger, log *zap.Logger) *Stager {
	cfg.applyDefaults()
	if merger == nil {
		merger = rst.NewMerger()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Stager{cfg: cfg, merger: merger, log: log}
}

// Config returns the effective configuration.
func (s *Stager) Config() StagingConfig { return s.cfg }

// OnEvent implements EventSink.
func (s *Stager) OnEvent(ev Event) error {
	switch e := ev.(type) {
	case TemplateEvent:
		_, err := s.StageTemplate(e.Path)
		return err
	case IndexEvent:
		return s.StageIndex(e.Source)
	case ProcessEvent:
		return s.StageProcess(e.Name)
	}
	return nil
}

// StageTemplate copies the template at src to the same path relative to the
// documentation root as it has relative to its BaseDir ancestor, and
// returns the destination.
func (s *Stager) StageTemplate(src string) (string, error) {
	rel, err := relativeToBase(src, s.cfg.BaseDir)
	if err != nil {
		return "", NewStagingError("resolve", src, err)
	}
	dst := filepath.Join(s.cfg.DocsDir, rel)
	if err := s.copy(src, dst); err != nil {
		return "", err
	}
	s.log.Debug("staged template", zap.String("src", src), zap.String("dst", dst))
	return dst, nil
}

// StageIndex installs the index at src, merging it into the existing index
// when there is one.
func (s *Stager) StageIndex(src string) error {
	if src == "" {
		return nil
	}
	index := s.cfg.resolve(s.cfg.IndexFile)
	if !exists(index) {
		if err := s.copy(src, index); err != nil {
			return err
		}
		s.log.Debug("installed index", zap.String("src", src), zap.String("dst", index))
		return nil
	}

	staged := s.cfg.resolve(s.cfg.NewIndexFile)
	if err := s.copy(src, staged); err != nil {
		return err
	}
	if err := s.merger.MergeIndexFiles(staged, index); err != nil {
		return NewStagingError("merge", index, err)
	}
	s.log.Debug("merged index", zap.String("src", src), zap.String("dst", index))
	return nil
}

// StageProcess installs the description of the named process, appending it
// to the existing process document when there is one.
func (s *Stager) StageProcess(name string) error {
	if name == "" {
		return nil
	}
	src := filepath.Join(s.cfg.resolve(s.cfg.ProcessSourceDir), s.cfg.ProcessPrefix+name+".rst")
	dst := s.cfg.resolve(s.cfg.ProcessFile)
	if !exists(dst) {
		if err := s.copy(src, dst); err != nil {
			return err
		}
		s.log.Debug("installed process", zap.String("process", name), zap.String("dst", dst))
		return nil
	}
	if err := s.merger.MergeProcessFiles(src, dst); err != nil {
		return NewStagingError("merge", dst, err)
	}
	s.log.Debug("merged process", zap.String("process", name), zap.String("dst", dst))
	return nil
}

// copy copies src to dst. When dst's directory is missing it is created and
// the copy is tried once more.
func (s *Stager) copy(src, dst string) error {
	err := copyFile(src, dst)
	if errors.Is(err, errMissingDir) {
		if mkErr := os.MkdirAll(filepath.Dir(dst), 0o755); mkErr != nil {
			return NewStagingError("copy", dst, mkErr)
		}
		err = copyFile(src, dst)
	}
	if err != nil {
		return NewStagingError("copy", dst, err)
	}
	return nil
}

var errMissingDir = errors.New("destination directory does not exist")

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %w", errMissingDir, err)
		}
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// relativeToBase returns p relative to its nearest ancestor named base.
func relativeToBase(p, base string) (string, error) {
	file := filepath.Base(p)
	dir := filepath.Dir(p)
	for filepath.Base(dir) != base {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s not under %q", ErrBaseNotFound, p, base)
		}
		file = filepath.Join(filepath.Base(dir), file)
		dir = parent
	}
	return file, nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/glbview/internal/logger"
)

// ProgressFunc receives the number of bytes read so far and the file size.
type ProgressFunc func(loaded, total int64)

// Outcome is delivered by LoadAsync when loading finishes.
type Outcome struct {
	Path   string
	Result *Result
	Err    error
}

// Load reads and builds the model at path. External resources are
// resolved relative to the file's directory.
func Load(path string, progress ProgressFunc) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat model: %w", err)
	}

	r := io.Reader(f)
	if progress != nil {
		r = &progressReader{r: f, total: info.Size(), fn: progress}
	}

	res, err := Decode(r, os.DirFS(filepath.Dir(path)))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return res, nil
}

// LoadAsync loads path on a new goroutine. The returned channel receives
// exactly one Outcome and is then closed. progress runs on the loading
// goroutine.
func LoadAsync(path string, progress ProgressFunc) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := Load(path, progress)
		ch <- Outcome{Path: path, Result: res, Err: err}
	}()
	return ch
}

// LogProgress logs load progress as a percentage at debug level.
func LogProgress(path string) ProgressFunc {
	log := logger.Named("loader")
	return func(loaded, total int64) {
		if total <= 0 {
			return
		}
		log.Debug("model loading",
			zap.String("path", path),
			zap.String("progress", fmt.Sprintf("%.2f%%", float64(loaded)/float64(total)*100)))
	}
}

type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	fn     ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.fn(p.loaded, p.total)
	}
	return n, err
}

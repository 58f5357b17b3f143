package httpclient

import (
	"io"

	"github.com/kbukum/wxadapter/platform"
)

// progressReader reports bytes read from r. total is -1 when unknown.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	done  bool
	emit  func(platform.ProgressEvent)
}

func newProgressReader(r io.Reader, total int64, emit func(platform.ProgressEvent)) *progressReader {
	if total <= 0 {
		total = -1
	}
	return &progressReader{r: r, total: total, emit: emit}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	if err == io.EOF && !p.done {
		p.done = true
		if p.total < 0 {
			p.report()
		}
	}
	return n, err
}

func (p *progressReader) report() {
	pct := 0
	switch {
	case p.total > 0:
		pct = int(p.read * 100 / p.total)
	case p.done:
		pct = 100
	}
	if pct > 100 {
		pct = 100
	}
	p.emit(platform.ProgressEvent{
		Progress:      pct,
		TotalBytes:    p.read,
		ExpectedBytes: p.total,
	})
}

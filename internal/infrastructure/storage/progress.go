package storage

import "io"

// ProgressReader reports transfer percentage as the consumer reads
// through it. Used by adapters whose SDK streams the source during
// upload, which makes read offset == bytes transferred.
type ProgressReader struct {
	src        io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(percent int)
}

func NewProgressReader(src io.Reader, total int64, onProgress func(percent int)) *ProgressReader {
	return &ProgressReader{src: src, total: total, last: -1, onProgress: onProgress}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.src.Read(b)
	p.read += int64(n)

	if p.onProgress != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.last {
			p.last = pct
			p.onProgress(pct)
		}
	}

	return n, err
}

package shellcheck

import (
	"sync"

	"github.com/armon/circbuf"
)

// stderrLimit bounds how much of shellcheck's stderr is kept for logging.
const stderrLimit = 4 * 1024

// tailBuffer is an io.Writer that retains only the last N bytes written.
// It is safe for concurrent use.
type tailBuffer struct {
	mu  sync.Mutex
	buf *circbuf.Buffer
}

func newTailBuffer(limit int) *tailBuffer {
	b, err := circbuf.NewBuffer(int64(limit))
	if err != nil {
		return &tailBuffer{}
	}
	return &tailBuffer{buf: b}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	if b.buf == nil || len(p) == 0 {
		return len(p), nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *tailBuffer) String() string {
	if b.buf == nil {
		return ""
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

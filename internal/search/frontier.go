package search

// frontier is a growable FIFO ring buffer of arena indices
type frontier struct {
	buf  []int
	head int
	size int
}

func newFrontier(capacity int) *frontier {
	if capacity < 1 {
		capacity = 1
	}
	return &frontier{buf: make([]int, capacity)}
}

func (f *frontier) Len() int {
	return f.size
}

func (f *frontier) Push(node int) {
	if f.size == len(f.buf) {
		f.grow()
	}
	f.buf[(f.head+f.size)%len(f.buf)] = node
	f.size++
}

// Pop removes the oldest entry; ok is false when the frontier is empty
func (f *frontier) Pop() (node int, ok bool) {
	if f.size == 0 {
		return 0, false
	}
	node = f.buf[f.head]
	f.head = (f.head + 1) % len(f.buf)
	f.size--
	return node, true
}

func (f *frontier) grow() {
	next := make([]int, len(f.buf)*2)
	for i := 0; i < f.size; i++ {
		next[i] = f.buf[(f.head+i)%len(f.buf)]
	}
	f.buf = next
	f.head = 0
}

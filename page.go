package temparena

// page is one contiguous block of backing memory with its own bump cursor.
// off only moves forward; it is rewound solely by Arena.Reset.
type page struct {
	buf  []byte
	off  int
	next *page
}

func (p *page) remaining() int {
	return len(p.buf) - p.off
}

// bump hands out n bytes at the cursor and advances it by the aligned size.
// The caller guarantees size <= p.remaining().
func (p *page) bump(n, size int) []byte {
	start := p.off
	p.off += size
	return p.buf[start : start+n : start+size]
}

// pageChain is the list of overflow pages created during the current epoch.
// tail is tracked so appends do not walk the list.
type pageChain struct {
	head *page
	tail *page
	n    int
}

func (c *pageChain) push(p *page) {
	p.next = nil
	if c.tail == nil {
		c.head = p
	} else {
		c.tail.next = p
	}
	c.tail = p
	c.n++
}

// drain unlinks every page in order, hands it to release and leaves the
// chain empty.
func (c *pageChain) drain(release func(*page)) {
	p := c.head
	for p != nil {
		next := p.next
		p.next = nil
		release(p)
		p = next
	}
	c.head, c.tail, c.n = nil, nil, 0
}

func (c *pageChain) each(fn func(*page)) {
	for p := c.head; p != nil; p = p.next {
		fn(p)
	}
}

// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

// window is the 32 KiB history that back-references point into. Every byte
// handed to the caller passes through it.
type window struct {
	hist  [historySize]byte
	pos   int   // next write position
	total int64 // bytes ever written, dictionary included
}

func (w *window) reset() {
	w.pos = 0
	w.total = 0
}

// preset loads the tail of a preset dictionary.
func (w *window) preset(dict []byte) {
	w.reset()
	w.write(dict)
}

// write records bytes that were produced without the window's help.
func (w *window) write(p []byte) {
	w.total += int64(len(p))
	if len(p) > historySize {
		p = p[len(p)-historySize:]
	}
	n := copy(w.hist[w.pos:], p)
	copy(w.hist[:], p[n:])
	w.pos = (w.pos + len(p)) & historyMask
}

// appendLiteral records b and writes it to dst[0].
func (w *window) appendLiteral(b byte, dst []byte) {
	w.hist[w.pos] = b
	w.pos = (w.pos + 1) & historyMask
	w.total++
	dst[0] = b
}

// copyBackReference copies up to length bytes from distance bytes back to
// dst and returns how many were copied. Overlapping references repeat the
// pattern since bytes are copied one at a time.
func (w *window) copyBackReference(length, distance int, dst []byte) (int, error) {
	if distance < 1 || distance > historySize || int64(distance) > w.total {
		return 0, ErrInvalidDistance
	}
	n := length
	if n > len(dst) {
		n = len(dst)
	}
	src := (w.pos - distance) & historyMask
	for i := 0; i < n; i++ {
		b := w.hist[src]
		w.hist[w.pos] = b
		dst[i] = b
		src = (src + 1) & historyMask
		w.pos = (w.pos + 1) & historyMask
	}
	w.total += int64(n)
	return n, nil
}

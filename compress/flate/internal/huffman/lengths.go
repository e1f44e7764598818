// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "sort"

type litCount struct {
	lit   uint16
	count uint32
}

// Lengths computes minimum-redundancy code lengths for histogram, limited to
// maxLen bits. Symbols with a zero count get length 0. A lone symbol gets
// length 1.
func Lengths(histogram []uint32, maxLen int) []uint8 {
	counts := make([]litCount, 0, len(histogram))
	for i, v := range histogram {
		if v != 0 {
			counts = append(counts, litCount{lit: uint16(i), count: v})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	w := make([]uint32, len(counts))
	for i, v := range counts {
		w[i] = v.count
	}
	longest := moffatLens(w)

	lens := make([]uint8, len(histogram))
	if longest <= uint32(maxLen) {
		for i, v := range w {
			lens[counts[i].lit] = uint8(v)
		}
		return lens
	}

	lenCounts := make([]int, longest+1)
	for _, v := range w {
		lenCounts[v]++
	}
	enforceMaxLen(lenCounts, maxLen)
	idx := 0
	for length := 1; length <= maxLen; length++ {
		for j := 0; j < lenCounts[length]; j++ {
			lens[counts[idx].lit] = uint8(length)
			idx++
		}
	}
	return lens
}

// moffatLens replaces the weights in w, sorted in decreasing order, with
// their code lengths and returns the longest. It is the in-place algorithm
// of Moffat and Katajainen, http://hjemmesider.diku.dk/~jyrki/Paper/WADS95.pdf .
func moffatLens(w []uint32) uint32 {
	// phase 1
	n := len(w)
	if n == 0 {
		return 0
	}
	if n == 1 {
		w[0] = 1
		return 1
	}
	leaf := n - 1
	root := n - 1
	for next := n - 1; next >= 1; next-- {
		// find first child
		if leaf < 0 || (root > next && w[root] < w[leaf]) {
			w[next] = w[root]
			w[root] = uint32(next)
			root--
		} else {
			w[next] = w[leaf]
			leaf--
		}

		// find second child
		if leaf < 0 || (root > next && w[root] < w[leaf]) {
			w[next] += w[root]
			w[root] = uint32(next)
			root--
		} else {
			w[next] += w[leaf]
			leaf--
		}
	}
	// phase 2
	w[1] = 0
	for next := 2; next <= n-1; next++ {
		w[next] = w[w[next]] + 1
	}
	// phase 3
	avail := 1
	used := 0
	depth := 0
	root = 1
	next := 0
	for avail > 0 {
		for ; root < n && w[root] == uint32(depth); root++ {
			used++
		}
		for ; avail > used; avail-- {
			w[next] = uint32(depth)
			next++
		}
		avail = 2 * used
		depth++
		used = 0
	}
	return w[len(w)-1]
}

// enforceMaxLen moves lengths above maxLen down to it and then lengthens
// shorter codes until the Kraft sum is exactly 1 << maxLen again.
func enforceMaxLen(lenCounts []int, maxLen int) {
	for i := maxLen + 1; i < len(lenCounts); i++ {
		lenCounts[maxLen] += lenCounts[i]
		lenCounts[i] = 0
	}

	total := 0
	for i := 1; i <= maxLen; i++ {
		total += lenCounts[i] << (maxLen - i)
	}
	for total != 1<<maxLen {
		lenCounts[maxLen]--
		for i := maxLen - 1; i > 0; i-- {
			if lenCounts[i] != 0 {
				lenCounts[i]--
				lenCounts[i+1] += 2
				break
			}
		}
		total--
	}
}

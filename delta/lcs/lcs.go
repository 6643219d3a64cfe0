// Package lcs computes a longest common subsequence of two byte sequences.
// The result is the alignment backbone the diff engine walks to decide which
// bytes are shared, removed, or inserted.
package lcs

import "context"

// Bytes returns one maximal-length common subsequence of source and target.
//
// Standard dynamic programming over an (n+1)x(m+1) length table, O(n*m) time
// and memory. Backtrack tie-break: when extending neither side wins, the
// source index steps first. The tie-break is deterministic and part of wire
// compatibility for the exact instruction stream; round-trip correctness does
// not depend on it.
func Bytes(source, target []byte) []byte {
	backbone, _ := BytesContext(context.Background(), source, target)
	return backbone
}

// BytesContext is Bytes with a cooperative cancellation check once per table
// row. The output contract is identical.
func BytesContext(ctx context.Context, source, target []byte) ([]byte, error) {
	n, m := len(source), len(target)
	if n == 0 || m == 0 {
		return nil, ctx.Err()
	}

	// table[i*(m+1)+j] = LCS length of source[:i] and target[:j].
	width := m + 1
	table := make([]int, (n+1)*width)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := i * width
		prev := row - width
		for j := 1; j <= m; j++ {
			if source[i-1] == target[j-1] {
				table[row+j] = table[prev+j-1] + 1
			} else if table[prev+j] >= table[row+j-1] {
				table[row+j] = table[prev+j]
			} else {
				table[row+j] = table[row+j-1]
			}
		}
	}

	out := make([]byte, 0, table[n*width+m])
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case source[i-1] == target[j-1]:
			out = append(out, source[i-1])
			i--
			j--
		case table[(i-1)*width+j] >= table[i*width+j-1]:
			i--
		default:
			j--
		}
	}

	// Backtracking walks tail-first.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out, nil
}

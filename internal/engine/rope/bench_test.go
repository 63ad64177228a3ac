package rope

import (
	"strings"
	"testing"
)

func benchText(lines int) string {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
		sb.WriteString("Ünïcödé text keeps the fast path honest.\n")
	}
	return sb.String()
}

func BenchmarkFromString(b *testing.B) {
	text := benchText(5000)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FromString(text)
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	r := FromString(benchText(5000))
	mid := r.Len() / 2
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r = r.Insert(mid, "x")
	}
}

func BenchmarkLineText(b *testing.B) {
	r := FromString(benchText(5000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.LineText(i % r.LineCount())
	}
}

func BenchmarkOffsetToPoint(b *testing.B) {
	r := FromString(benchText(5000))
	n := r.Len()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.OffsetToPoint((i * 7919) % n)
	}
}

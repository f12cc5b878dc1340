package semicsv

import (
	"bytes"
	stdcsv "encoding/csv"
	"io"
	"strings"
	"testing"
)

func benchmarkData() string {
	return strings.Repeat(`xxxxxxxxxxxxxxxx;yyyyyyyyyyyyyyyy;"zzzz;zzzz""zzzz";1234.5678;vvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvv
xxxxxxxxxxxxxxxxxxxxxxxx;yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy;zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz;42;vvvv
;;zzzz;"wwww
wwww";vvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvv
`, 3)
}

func BenchmarkRead(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if rows := Read(data); len(rows) == 0 {
			b.Fatal("no rows")
		}
	}
}

func BenchmarkEncodingCSV(b *testing.B) {
	data := []byte(benchmarkData())
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		cr := stdcsv.NewReader(bytes.NewReader(data))
		cr.Comma = ';'
		cr.FieldsPerRecord = -1

		for {
			if _, err := cr.Read(); err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkWrite(b *testing.B) {
	rows := Read(benchmarkData())
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if out := Write(rows); out == "" {
			b.Fatal("empty output")
		}
	}
}

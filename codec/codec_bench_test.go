package codec

import (
	"math/rand/v2"
	"testing"
)

type benchResult struct {
	Labels      []int   `json:"labels"`
	NumClusters int     `json:"num_clusters"`
	Loss        float64 `json:"binder_loss"`
}

func benchMatrix(n int) [][]float64 {
	r := rand.New(rand.NewPCG(1, 2))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = r.Float64()
		}
	}
	return rows
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for b.Loop() {
		var v T
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodec_Marshal_Matrix(b *testing.B) {
	m := benchMatrix(200)

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, m) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, m) })
}

func BenchmarkCodec_Unmarshal_Matrix(b *testing.B) {
	data := MustMarshal(JSON{}, benchMatrix(200))

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecUnmarshal[[][]float64](b, JSON{}, data) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecUnmarshal[[][]float64](b, GoJSON{}, data) })
}

func BenchmarkCodec_Marshal_Result(b *testing.B) {
	labels := make([]int, 1000)
	for i := range labels {
		labels[i] = i%17 + 1
	}
	res := benchResult{Labels: labels, NumClusters: 17, Loss: 1234.5}

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, res) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, res) })
}
